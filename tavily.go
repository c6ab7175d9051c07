package deepresearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultTavilyURL = "https://api.tavily.com/search"

// TavilyOption configures the live search capability.
type TavilyOption func(*tavilyClient)

// WithTavilyHTTPClient replaces the HTTP client (default http.DefaultClient).
func WithTavilyHTTPClient(c *http.Client) TavilyOption {
	return func(t *tavilyClient) { t.http = c }
}

// WithTavilyURL overrides the API endpoint. Used by tests.
func WithTavilyURL(url string) TavilyOption {
	return func(t *tavilyClient) { t.url = url }
}

// WithTavilyMaxResults caps the number of results per query (default 5).
func WithTavilyMaxResults(n int) TavilyOption {
	return func(t *tavilyClient) { t.maxResults = n }
}

type tavilyClient struct {
	apiKey     string
	url        string
	maxResults int
	http       *http.Client
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// TavilySearch returns a live search capability backed by the Tavily web
// search API. Errors (transport, auth, rate limits) propagate to the caller;
// there are no retries at this layer.
func TavilySearch(apiKey string, opts ...TavilyOption) SearchFunc {
	t := &tavilyClient{
		apiKey:     apiKey,
		url:        defaultTavilyURL,
		maxResults: 5,
		http:       http.DefaultClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t.search
}

func (t *tavilyClient) search(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:     t.apiKey,
		Query:      query,
		MaxResults: t.maxResults,
	})
	if err != nil {
		return "", fmt.Errorf("tavily: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tavily: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("tavily: decode response: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results for: %s\n", query)
	for _, r := range parsed.Results {
		fmt.Fprintf(&b, "\n[%s] %s\nURL: %s\n", r.Title, r.Content, r.URL)
	}
	return b.String(), nil
}
