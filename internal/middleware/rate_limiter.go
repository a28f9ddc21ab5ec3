package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedTransport is an http.RoundTripper that waits for a token before
// each outbound request. Public geocoders such as Nominatim allow one request
// per second per client.
type RateLimitedTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitedTransport allows perSecond requests with the given burst through base.
// A nil base uses http.DefaultTransport.
func NewRateLimitedTransport(base http.RoundTripper, perSecond float64, burst int) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedTransport{
		Base:    base,
		Limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// RoundTrip blocks until the limiter allows the request or its context ends.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.Base.RoundTrip(req)
}

type idleCloser interface {
	CloseIdleConnections()
}

// CloseIdleConnections forwards to the base transport so http.Client.CloseIdleConnections reaches it.
func (t *RateLimitedTransport) CloseIdleConnections() {
	if c, ok := t.Base.(idleCloser); ok {
		c.CloseIdleConnections()
	}
}
