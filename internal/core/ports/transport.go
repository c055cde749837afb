// Package ports defines the consumed capabilities of the integration core.
// Implementations live under internal/adapters; the core depends only on
// these interfaces.
package ports

import "context"

// Request is one concrete HTTP request to attempt. Path is relative to the
// transport's base URL. Body, when non-nil, is JSON-encoded by the transport.
type Request struct {
	Method string
	Path   string
	Body   any
}

// Response is the raw outcome of a dispatched Request. StatusCode is the HTTP
// status; Body is the raw response body, which may be empty or non-JSON even
// on success.
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport dispatches a single HTTP request and returns the raw response.
//
// A non-nil error means the server was never reached (network failure,
// timeout); HTTP-level failures are expressed through Response.StatusCode.
// Timeouts are the transport's responsibility: the negotiation layer treats a
// transport error identically to a non-2xx response for candidate
// advancement. Implementations attach the acting credential themselves.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}
