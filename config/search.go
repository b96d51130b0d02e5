package config

// SearchConfig carries the web search credential. The block is optional;
// without it the search branch degrades to a fixed unavailable message.
type SearchConfig struct {
	APIKey string `hcl:"api_key"`
}
