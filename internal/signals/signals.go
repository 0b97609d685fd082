// Package signals wraps the opaque external scoring services: a toxicity
// attribute scorer, a claim-verification lookup, and a document summarizer.
// Every failure surfaces as an *UpstreamError; callers log and skip the
// forwarding step rather than propagate. No call is retried automatically.
package signals

import (
	"fmt"
	"net/http"
	"time"
)

// UpstreamError wraps a network or parse failure from an external service.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(service string, format string, args ...any) *UpstreamError {
	return &UpstreamError{Service: service, Err: fmt.Errorf(format, args...)}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
