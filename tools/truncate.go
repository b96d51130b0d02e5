package tools

// TruncationMarker is appended whenever stage output is cut to size.
const TruncationMarker = "...\n(truncated)"

// Truncate caps s at limit runes and appends the truncation marker.
// Runes, not bytes: the conversation is frequently CJK text and a byte
// cut could split a UTF-8 sequence.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + TruncationMarker
}
