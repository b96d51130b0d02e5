package search

import (
	"fmt"
	"strings"
)

const (
	// NothingFoundMessage substitutes for an empty search response.
	NothingFoundMessage = "No relevant results were found. Try different keywords."

	maxDigestResults = 3
	snippetLimit     = 200
)

// FormatDigest renders a search response for prompt consumption: the
// synthesized answer first when present, then up to three results as
// title, snippet, and source URL.
func FormatDigest(resp *Response) string {
	var b strings.Builder

	if resp.Answer != "" {
		b.WriteString("[Synthesized answer]\n")
		b.WriteString(resp.Answer)
		b.WriteString("\n\n")
	}

	if len(resp.Results) > 0 {
		b.WriteString("[Related information]\n")
		for i, r := range resp.Results {
			if i >= maxDigestResults {
				break
			}
			title := r.Title
			if title == "" {
				title = "(untitled)"
			}
			content := r.Content
			if runes := []rune(content); len(runes) > snippetLimit {
				content = string(runes[:snippetLimit]) + "..."
			}
			fmt.Fprintf(&b, "%d. %s\n   %s\n   Source: %s\n\n", i+1, title, content, r.URL)
		}
	}

	if b.Len() == 0 {
		return NothingFoundMessage
	}
	return strings.TrimRight(b.String(), "\n")
}
