package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	adapterhttp "orderlink/internal/adapters/in/http"
	"orderlink/internal/core/application/actions"
	"orderlink/internal/core/application/negotiation"
	"orderlink/internal/core/application/syncer"
	"orderlink/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu      sync.Mutex
	respond func(req ports.Request) (ports.Response, error)
}

func (t *fakeTransport) Do(_ context.Context, req ports.Request) (ports.Response, error) {
	t.mu.Lock()
	respond := t.respond
	t.mu.Unlock()
	if respond != nil {
		return respond(req)
	}
	return ports.Response{StatusCode: nethttp.StatusNotFound}, nil
}

type fakeIdentity struct {
	username string
	role     string
}

func (i fakeIdentity) Username() string { return i.username }
func (i fakeIdentity) Role() string     { return i.role }

func newApp(transport ports.Transport, identity ports.Identity) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := actions.NewClient(negotiation.NewNegotiator(transport, nil, logger), nil, nil, logger)
	synchronizer := syncer.NewSynchronizer(client, identity, nil, logger)

	e := echo.New()
	adapterhttp.NewServer(client, synchronizer, identity).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func courierApp(respond func(req ports.Request) (ports.Response, error)) *echo.Echo {
	transport := &fakeTransport{respond: respond}
	return newApp(transport, fakeIdentity{username: "alice", role: "courier"})
}

func TestServer_Health(t *testing.T) {
	e := courierApp(nil)
	rec := doJSON(e, nethttp.MethodGet, "/health", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_Checkout(t *testing.T) {
	t.Run("submits_the_cart_and_returns_the_order_id", func(t *testing.T) {
		e := courierApp(func(req ports.Request) (ports.Response, error) {
			return ports.Response{StatusCode: nethttp.StatusOK, Body: []byte(`{"order_id":42}`)}, nil
		})

		rec := doJSON(e, nethttp.MethodPost, "/api/checkout",
			`{"items":[{"product_id":"p1","name":"Pizza","qty":2,"price":1250}]}`)

		require.Equal(t, nethttp.StatusCreated, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "42", body["order_id"])
	})

	t.Run("empty_cart_is_unprocessable", func(t *testing.T) {
		e := courierApp(nil)
		rec := doJSON(e, nethttp.MethodPost, "/api/checkout", `{"items":[]}`)
		assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("rejected_credential_maps_to_401", func(t *testing.T) {
		e := courierApp(func(req ports.Request) (ports.Response, error) {
			return ports.Response{StatusCode: nethttp.StatusUnauthorized}, nil
		})
		rec := doJSON(e, nethttp.MethodPost, "/api/checkout",
			`{"items":[{"product_id":"p1","name":"Pizza","qty":1,"price":900}]}`)
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("exhausted_negotiation_maps_to_502", func(t *testing.T) {
		e := courierApp(nil) // every candidate 404s
		rec := doJSON(e, nethttp.MethodPost, "/api/checkout",
			`{"items":[{"product_id":"p1","name":"Pizza","qty":1,"price":900}]}`)
		assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
	})
}

func TestServer_RoleGate(t *testing.T) {
	t.Run("customer_role_cannot_reach_courier_routes", func(t *testing.T) {
		transport := &fakeTransport{}
		e := newApp(transport, fakeIdentity{username: "bob", role: "customer"})

		rec := doJSON(e, nethttp.MethodGet, "/api/courier/orders/open", "")
		assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	})

	t.Run("admin_role_is_permitted", func(t *testing.T) {
		transport := &fakeTransport{}
		e := newApp(transport, fakeIdentity{username: "root", role: "admin"})

		rec := doJSON(e, nethttp.MethodGet, "/api/courier/orders/open", "")
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})
}

func TestServer_CourierWorkflows(t *testing.T) {
	listAware := func(openBody string, action func(req ports.Request) (ports.Response, bool)) func(req ports.Request) (ports.Response, error) {
		return func(req ports.Request) (ports.Response, error) {
			switch req.Path {
			case "/api/courier/orders?mine=0":
				return ports.Response{StatusCode: nethttp.StatusOK, Body: []byte(openBody)}, nil
			case "/api/courier/orders?mine=1":
				return ports.Response{StatusCode: nethttp.StatusOK, Body: []byte(`[]`)}, nil
			}
			if action != nil {
				if resp, ok := action(req); ok {
					return resp, nil
				}
			}
			return ports.Response{StatusCode: nethttp.StatusNotFound}, nil
		}
	}

	t.Run("claim_moves_the_order_into_mine", func(t *testing.T) {
		e := courierApp(listAware(`[{"id":"7","status":"open"}]`,
			func(req ports.Request) (ports.Response, bool) {
				if strings.Contains(req.Path, "/claim") {
					return ports.Response{StatusCode: nethttp.StatusOK}, true
				}
				return ports.Response{}, false
			}))

		rec := doJSON(e, nethttp.MethodPost, "/api/courier/orders/7/claim", "")
		require.Equal(t, nethttp.StatusNoContent, rec.Code)

		rec = doJSON(e, nethttp.MethodGet, "/api/courier/orders/mine", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)
		var body map[string][]map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body["active"], 1)
		assert.Equal(t, "7", body["active"][0]["id"])
		assert.Equal(t, "claimed", body["active"][0]["status"])
		assert.Equal(t, "alice", body["active"][0]["assigned_courier"])
	})

	t.Run("status_accepts_localized_vocabulary", func(t *testing.T) {
		var sentToken string
		e := courierApp(listAware(`[{"id":"9","status":"angenommen"}]`,
			func(req ports.Request) (ports.Response, bool) {
				if strings.Contains(req.Path, "/status") {
					if body, ok := req.Body.(map[string]any); ok {
						sentToken, _ = body["status"].(string)
					}
					return ports.Response{StatusCode: nethttp.StatusOK}, true
				}
				return ports.Response{}, false
			}))

		rec := doJSON(e, nethttp.MethodPost, "/api/courier/orders/9/status", `{"status":"on_the_way"}`)
		assert.Equal(t, nethttp.StatusNoContent, rec.Code)
		assert.Equal(t, "unterwegs", sentToken)
	})

	t.Run("missing_status_token_is_unprocessable", func(t *testing.T) {
		e := courierApp(nil)
		rec := doJSON(e, nethttp.MethodPost, "/api/courier/orders/9/status", `{}`)
		assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("advance_of_an_unknown_order_is_404", func(t *testing.T) {
		e := courierApp(nil)
		rec := doJSON(e, nethttp.MethodPost, "/api/courier/orders/nope/advance", "")
		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("negative_eta_is_unprocessable", func(t *testing.T) {
		e := courierApp(nil)
		rec := doJSON(e, nethttp.MethodPut, "/api/courier/orders/7/eta", `{"minutes":-5}`)
		assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("location_without_a_geolocator_is_unprocessable", func(t *testing.T) {
		e := courierApp(nil)
		rec := doJSON(e, nethttp.MethodPut, "/api/courier/orders/7/location", "")
		assert.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("open_pool_reflects_the_snapshot", func(t *testing.T) {
		e := courierApp(listAware(`[{"id":"1","status":"open","address":"Ritterstr. 12"}]`, nil))
		// Empty until a reload has run; a claim failure triggers one.
		rec := doJSON(e, nethttp.MethodGet, "/api/courier/orders/open", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)
		var body map[string][]map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body["orders"])
	})
}
