package signals

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedClaimChecker memoizes claim labels by message content. Edited
// messages are re-evaluated by the caller, so identical content must not
// trigger a second billed lookup. Failures are never cached.
type CachedClaimChecker struct {
	inner ClaimChecker
	cache *lru.Cache[string, string]
}

// NewCachedClaimChecker wraps a checker with an LRU of the given size.
func NewCachedClaimChecker(inner ClaimChecker, size int) (*CachedClaimChecker, error) {
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedClaimChecker{inner: inner, cache: c}, nil
}

// CheckClaim returns the cached label when available.
func (c *CachedClaimChecker) CheckClaim(ctx context.Context, text string) (string, error) {
	if label, ok := c.cache.Get(text); ok {
		return label, nil
	}
	label, err := c.inner.CheckClaim(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.Add(text, label)
	return label, nil
}
