package llm

import (
	"context"
	"net/http"
	"time"
)

type requestIDKey struct{}

// WithRequestID attaches a per-call identifier that is forwarded to the provider
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the identifier set by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// noCacheTransport marks every provider request as uncacheable so identical
// prompts always reach the model.
type noCacheTransport struct {
	base http.RoundTripper
}

func (t *noCacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Cache-Control", "no-cache, no-store")
	r.Header.Set("Pragma", "no-cache")
	if id := RequestIDFromContext(req.Context()); id != "" {
		r.Header.Set("X-Request-ID", id)
	}
	return t.base.RoundTrip(r)
}

// NewHTTPClient returns the HTTP client used for provider calls
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &noCacheTransport{base: http.DefaultTransport},
	}
}
