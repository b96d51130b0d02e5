package tools

import (
	"context"

	"scout/search"
)

// UnavailableMessage replaces an outbound search call when no credential
// is configured.
const UnavailableMessage = "Web search is unavailable: no search API key is configured. Set TAVILY_API_KEY to enable it."

// WebSearch delegates to the search backend with the raw query, without
// the recency date suffix the search stage adds.
type WebSearch struct {
	searcher search.Searcher
}

// NewWebSearch wraps a searcher; a nil searcher means search is not
// configured and calls return UnavailableMessage.
func NewWebSearch(searcher search.Searcher) *WebSearch {
	return &WebSearch{searcher: searcher}
}

func (w *WebSearch) ToolName() string { return NameWebSearch }

func (w *WebSearch) ToolDescription() string {
	return "Searches the web for current information and returns a formatted digest"
}

func (w *WebSearch) Call(ctx context.Context, input string) (string, error) {
	if w.searcher == nil {
		return UnavailableMessage, nil
	}
	resp, err := w.searcher.Search(ctx, input)
	if err != nil {
		return "", err
	}
	return search.FormatDigest(resp), nil
}
