package httputil

import (
	"net/http"
	"time"

	"github.com/matzehuels/chartistry/pkg/observability"
)

// Transport is an http.RoundTripper that reports requests to
// observability.HTTP.
type Transport struct {
	// Base performs the request. Nil uses http.DefaultTransport.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	ctx, hooks := req.Context(), observability.HTTP()
	host, path := req.URL.Host, req.URL.Path

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	res, err := base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, res.StatusCode, time.Since(start))
	return res, nil
}

// StatusRetryable reports whether an HTTP status is worth retrying.
func StatusRetryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
