package signals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const claimBusterURL = "https://idir.uta.edu/claimbuster/api/v2/query/fact_matcher"

// ClaimChecker looks up a truth rating for a claim. The label vocabulary is
// an open string set; empty and "True" mean the claim is not flagged.
type ClaimChecker interface {
	CheckClaim(ctx context.Context, text string) (string, error)
}

// ClaimBusterClient queries the ClaimBuster fact matcher.
type ClaimBusterClient struct {
	key        string
	baseURL    string
	httpClient *http.Client
}

// NewClaimBusterClient creates a checker using the given API key.
func NewClaimBusterClient(key string) *ClaimBusterClient {
	return &ClaimBusterClient{key: key, baseURL: claimBusterURL, httpClient: defaultHTTPClient()}
}

type claimBusterResponse struct {
	Justification []struct {
		TruthRating string `json:"truth_rating"`
	} `json:"justification"`
}

// CheckClaim returns the truth rating of the closest matched claim, or an
// empty label when the matcher found nothing.
func (c *ClaimBusterClient) CheckClaim(ctx context.Context, text string) (string, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(text)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", upstream("claimbuster", "build request: %w", err)
	}
	req.Header.Set("x-api-key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", upstream("claimbuster", "request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", upstream("claimbuster", "unexpected status %d", resp.StatusCode)
	}

	var parsed claimBusterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", upstream("claimbuster", "decode response: %w", err)
	}
	if len(parsed.Justification) == 0 {
		return "", nil
	}
	return parsed.Justification[0].TruthRating, nil
}

// Flagged reports whether a claim label marks the message for review.
// Unknown ratings are treated as flagged, matching the open vocabulary.
func Flagged(label string) bool {
	return label != "" && label != "True"
}
