package signals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const smmryURL = "https://api.smmry.com"

// Summary is the structured result of summarizing a linked document.
type Summary struct {
	Title   string
	Content string
}

// Summarizer produces a title and short summary for a URL.
type Summarizer interface {
	Summarize(ctx context.Context, target string) (*Summary, error)
}

// SummaryClient calls the SMMRY document summarization API.
type SummaryClient struct {
	key        string
	baseURL    string
	httpClient *http.Client
}

// NewSummaryClient creates a summarizer using the given API key.
func NewSummaryClient(key string) *SummaryClient {
	return &SummaryClient{key: key, baseURL: smmryURL, httpClient: defaultHTTPClient()}
}

type smmryResponse struct {
	Title   string `json:"sm_api_title"`
	Content string `json:"sm_api_content"`
	Message string `json:"sm_api_message"`
}

// Summarize fetches a multi-sentence summary of the document at target.
func (c *SummaryClient) Summarize(ctx context.Context, target string) (*Summary, error) {
	q := url.Values{}
	q.Set("SM_API_KEY", c.key)
	q.Set("SM_URL", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, upstream("smmry", "build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream("smmry", "request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, upstream("smmry", "unexpected status %d", resp.StatusCode)
	}

	var parsed smmryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, upstream("smmry", "decode response: %w", err)
	}
	if parsed.Message != "" {
		return nil, upstream("smmry", "api error: %s", parsed.Message)
	}
	return &Summary{Title: parsed.Title, Content: parsed.Content}, nil
}
