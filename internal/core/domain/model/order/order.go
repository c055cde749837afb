package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"orderlink/internal/pkg/errs"
)

// Order is the canonical read model for a single order, coalesced from
// whichever payload shape a backend produced.
//
// ID is opaque: servers send it as a string or an integer, and it is always
// compared by string form. ID is stable across reloads and is the join key
// between the optimistic local view and server-confirmed state.
//
// Raw retains the source payload for fields not modeled here.
type Order struct {
	ID              string
	Status          Status
	CustomerLabel   string
	Address         string
	TotalMinorUnits *int64
	CreatedAt       *time.Time
	EtaAt           *time.Time
	AssignedCourier string
	Raw             map[string]any
}

// NormalizeOrder coalesces a raw decoded JSON object into an Order.
//
// Field values are picked from known alternate key names in priority order.
// Missing or malformed fields get neutral defaults (empty string, nil, zero)
// rather than failing. An object lacking any usable identity field returns a
// ValueIsRequired error; the caller drops such records instead of coercing
// them into phantom orders.
func NormalizeOrder(raw map[string]any) (Order, error) {
	id := coalesceID(raw, "id", "order_id", "orderId")
	if id == "" {
		return Order{}, errs.NewValueIsRequiredError("order identity")
	}

	return Order{
		ID:              id,
		Status:          Normalize(coalesceString(raw, "status", "state", "order_status")),
		CustomerLabel:   coalesceString(raw, "customer_name", "customer", "username", "user_name"),
		Address:         coalesceAddress(raw),
		TotalMinorUnits: coalesceMinorUnits(raw, "total", "total_price", "amount_total", "sum"),
		CreatedAt:       coalesceTime(raw, "created_at", "createdAt", "time_created"),
		EtaAt:           coalesceTime(raw, "eta_at", "etaAt"),
		AssignedCourier: coalesceString(raw, "courier_username", "courier"),
		Raw:             raw,
	}, nil
}

// UnwrapList extracts the list of raw order objects from a response body.
// Backends wrap lists differently: some return a bare array, others an object
// with the array under orders, results, rows, or data. Entries that are not
// objects are skipped. A body with no recognizable list yields an empty slice.
func UnwrapList(body any) []map[string]any {
	switch v := body.(type) {
	case []any:
		return onlyObjects(v)
	case map[string]any:
		for _, key := range []string{"orders", "results", "rows", "data"} {
			if arr, ok := v[key].([]any); ok {
				return onlyObjects(arr)
			}
		}
	}
	return nil
}

func onlyObjects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// coalesceID returns the first present identity value in string form.
// Numeric identities are rendered without a decimal part so that 42 and "42"
// join to the same key.
func coalesceID(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			if v == math.Trunc(v) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

func coalesceString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64, int, int64, bool:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// coalesceAddress also checks the nested location.address shape some
// backends use.
func coalesceAddress(raw map[string]any) string {
	if addr := coalesceString(raw, "address", "delivery_address"); addr != "" {
		return addr
	}
	if loc, ok := raw["location"].(map[string]any); ok {
		return coalesceString(loc, "address")
	}
	return ""
}

func coalesceMinorUnits(raw map[string]any, keys ...string) *int64 {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			cents := int64(math.Round(v))
			return &cents
		case string:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// coalesceTime accepts RFC 3339 strings and unix-second numbers.
// Malformed values yield nil instead of an error.
func coalesceTime(raw map[string]any, keys ...string) *time.Time {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v == "" {
				continue
			}
			if parsed, err := time.Parse(time.RFC3339, v); err == nil {
				return &parsed
			}
		case float64:
			parsed := time.Unix(int64(v), 0).UTC()
			return &parsed
		}
	}
	return nil
}
