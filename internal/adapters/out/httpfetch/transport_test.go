package httpfetch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderlink/internal/adapters/out/httpfetch"
	"orderlink/internal/core/ports"
	"orderlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	t.Run("rejects_empty_base_url", func(t *testing.T) {
		_, err := httpfetch.NewTransport("", "token")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("accepts_base_url_without_token", func(t *testing.T) {
		transport, err := httpfetch.NewTransport("http://localhost:3000", "")
		require.NoError(t, err)
		assert.NotNil(t, transport)
	})
}

func TestTransport_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches_credential_as_header_and_query_parameter", func(t *testing.T) {
		var gotAuth, gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotToken = r.URL.Query().Get("token")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		transport, err := httpfetch.NewTransport(server.URL, "secret")
		require.NoError(t, err)

		resp, err := transport.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/api/orders"})
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "secret", gotToken)
	})

	t.Run("preserves_an_existing_query_string", func(t *testing.T) {
		var gotMine, gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMine = r.URL.Query().Get("mine")
			gotToken = r.URL.Query().Get("token")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		transport, err := httpfetch.NewTransport(server.URL, "secret")
		require.NoError(t, err)

		_, err = transport.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/api/courier/orders?mine=0"})
		require.NoError(t, err)
		assert.Equal(t, "0", gotMine)
		assert.Equal(t, "secret", gotToken)
	})

	t.Run("encodes_the_body_as_json", func(t *testing.T) {
		var gotContentType string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		transport, err := httpfetch.NewTransport(server.URL, "")
		require.NoError(t, err)

		resp, err := transport.Do(ctx, ports.Request{
			Method: http.MethodPost,
			Path:   "/api/checkout",
			Body:   map[string]any{"status": "unterwegs"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "unterwegs", gotBody["status"])
	})

	t.Run("http_failures_come_back_as_status_codes_not_errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such route", http.StatusNotFound)
		}))
		defer server.Close()

		transport, err := httpfetch.NewTransport(server.URL, "")
		require.NoError(t, err)

		resp, err := transport.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/nope"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "no such route")
	})

	t.Run("unreachable_server_is_a_transport_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listens here anymore

		transport, err := httpfetch.NewTransport(server.URL, "")
		require.NoError(t, err)

		_, err = transport.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/api/orders"})
		require.Error(t, err)
	})
}
