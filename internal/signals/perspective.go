package signals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

const perspectiveURL = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

// Attributes requested from the scorer for every evaluated message.
var perspectiveAttributes = []string{
	"SEVERE_TOXICITY", "PROFANITY", "IDENTITY_ATTACK",
	"THREAT", "TOXICITY", "FLIRTATION",
}

// ToxicityScorer returns a per-attribute score map in [0,1] for a text.
type ToxicityScorer interface {
	ScoreToxicity(ctx context.Context, text string) (map[string]float64, error)
}

// PerspectiveClient scores text attributes via the Perspective API.
type PerspectiveClient struct {
	key        string
	baseURL    string
	httpClient *http.Client
}

// NewPerspectiveClient creates a scorer using the given API key.
func NewPerspectiveClient(key string) *PerspectiveClient {
	return &PerspectiveClient{key: key, baseURL: perspectiveURL, httpClient: defaultHTTPClient()}
}

type perspectiveRequest struct {
	Comment             struct{ Text string `json:"text"` } `json:"comment"`
	Languages           []string                            `json:"languages"`
	RequestedAttributes map[string]struct{}                 `json:"requestedAttributes"`
	DoNotStore          bool                                `json:"doNotStore"`
}

type perspectiveResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// ScoreToxicity submits the text and returns the summary score per attribute.
func (c *PerspectiveClient) ScoreToxicity(ctx context.Context, text string) (map[string]float64, error) {
	reqBody := perspectiveRequest{
		Languages:           []string{"en"},
		RequestedAttributes: make(map[string]struct{}, len(perspectiveAttributes)),
		DoNotStore:          true,
	}
	reqBody.Comment.Text = text
	for _, attr := range perspectiveAttributes {
		reqBody.RequestedAttributes[attr] = struct{}{}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, upstream("perspective", "encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.key, bytes.NewReader(payload))
	if err != nil {
		return nil, upstream("perspective", "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream("perspective", "request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, upstream("perspective", "unexpected status %d", resp.StatusCode)
	}

	var parsed perspectiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, upstream("perspective", "decode response: %w", err)
	}

	scores := make(map[string]float64, len(parsed.AttributeScores))
	for attr, v := range parsed.AttributeScores {
		scores[attr] = v.SummaryScore.Value
	}
	return scores, nil
}
