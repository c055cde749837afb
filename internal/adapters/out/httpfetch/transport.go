// Package httpfetch implements the ports.Transport interface on top of
// net/http. One Transport carries the backend base URL and the acting
// credential; every dispatched request gets the credential attached both as a
// bearer header and as a token query parameter, since the reachable backend
// variants disagree on where they read it from.
package httpfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orderlink/internal/core/ports"
	"orderlink/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// Transport dispatches requests against a single backend base URL.
type Transport struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewTransport creates a Transport for the given base URL and credential.
// The token may be empty; requests are then sent unauthenticated and the
// backend answers with 401 where a credential is required.
func NewTransport(baseURL string, token string) (*Transport, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}

	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Do dispatches the request and returns the raw response. A non-nil error
// means the server was never reached; HTTP-level failures come back through
// the status code.
func (t *Transport) Do(ctx context.Context, req ports.Request) (ports.Response, error) {
	target, err := t.buildURL(req.Path)
	if err != nil {
		return ports.Response{}, err
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return ports.Response{}, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return ports.Response{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return ports.Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.Response{}, err
	}
	return ports.Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// buildURL joins the relative path onto the base URL and appends the token
// query parameter, preserving any query already present on the path.
func (t *Transport) buildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target, err := url.Parse(t.baseURL + path)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("path", err)
	}
	if t.token != "" {
		query := target.Query()
		query.Set("token", t.token)
		target.RawQuery = query.Encode()
	}
	return target.String(), nil
}
