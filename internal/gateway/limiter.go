package gateway

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// limitedTransport wraps a RoundTripper and lets requests through at a maximum rate.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// newLimitedTransport creates a limited transport.
// maxRate - maximum number of requests per second, non-positive disables limiting.
func newLimitedTransport(base http.RoundTripper, maxRate float64) http.RoundTripper {
	if maxRate <= 0 {
		return base
	}
	return &limitedTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(maxRate), 1),
	}
}

// RoundTrip executes the request. If the limit is exceeded, it blocks until the call rate is within limit.
func (t *limitedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return t.base.RoundTrip(r)
}
