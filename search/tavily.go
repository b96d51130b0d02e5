// Package search provides the Tavily web search client and the digest
// formatting shared by the search stage and the web_search tool.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.tavily.com"

// Searcher is the web search collaborator. When no credential is
// configured the agent leaves its Searcher nil and search degrades to a
// fixed unavailability message.
type Searcher interface {
	Search(ctx context.Context, query string) (*Response, error)
}

// Request mirrors the Tavily /search API body.
type Request struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth,omitempty"`
	IncludeAnswer     bool   `json:"include_answer,omitempty"`
	IncludeRawContent bool   `json:"include_raw_content,omitempty"`
	MaxResults        int    `json:"max_results,omitempty"`
	Timeframe         string `json:"timeframe,omitempty"`
}

type Response struct {
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint (used in tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search issues one advanced-depth request: synthesized answer and raw
// content included, capped at 5 results, restricted to the past year.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	return c.SearchWith(ctx, Request{
		Query:             query,
		SearchDepth:       "advanced",
		IncludeAnswer:     true,
		IncludeRawContent: true,
		MaxResults:        5,
		Timeframe:         "year",
	})
}

func (c *Client) SearchWith(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(data))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}
