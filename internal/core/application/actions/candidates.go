package actions

import (
	"fmt"
	"net/http"

	"orderlink/internal/core/application/negotiation"
)

// Operation names, used for logging and as candidate-cache keys.
const (
	OpSubmitOrder = "submit_order"
	OpClaimOrder  = "claim_order"
	OpSetStatus   = "set_status"
	OpSetEta      = "set_eta"
	OpSetLocation = "set_location"
	OpListOpen    = "list_open"
	OpListMine    = "list_mine"
)

// submitEndpoints are the plausible names of the "create order" resource,
// in decreasing order of prior acceptance probability.
var submitEndpoints = []string{
	"/api/orders/checkout",
	"/api/checkout",
	"/api/orders/create",
	"/api/order/create",
	"/api/orders",
	"/api/order",
	"/api/orders/new",
	"/api/orders/submit",
	"/api/checkout/min",
}

// openOrderPaths and mineOrderPaths are the read-variant URL lists for the
// two order collections.
var (
	openOrderPaths = []string{
		"/api/courier/orders?mine=0",
		"/api/courier/orders/open",
		"/api/courier/orders/all",
		"/api/courier/queue",
	}
	mineOrderPaths = []string{
		"/api/courier/orders?mine=1",
		"/api/courier/orders/mine",
		"/api/courier/my",
	}
)

// submitCandidates produces the full candidate set for checkout: the
// Cartesian combination of every endpoint with every payload shape, iterated
// endpoint-major so every shape is tried against the first endpoint before
// moving on.
func submitCandidates(lines []CartLine, address string) []negotiation.Candidate {
	shapes := payloadShapes(lines, address)
	candidates := make([]negotiation.Candidate, 0, len(submitEndpoints)*len(shapes))
	for _, endpoint := range submitEndpoints {
		for _, shape := range shapes {
			candidates = append(candidates, negotiation.Candidate{
				Method: http.MethodPost,
				Path:   endpoint,
				Body:   shape,
			})
		}
	}
	return candidates
}

// payloadShapes renders the same cart contents under the field-naming
// conventions the backends are known to use. When a saved delivery address is
// available it is attached under both destination and address keys.
func payloadShapes(lines []CartLine, address string) []any {
	productQty := make([]map[string]any, len(lines))
	idQty := make([]map[string]any, len(lines))
	lineQuantity := make([]map[string]any, len(lines))
	for i, line := range lines {
		productQty[i] = map[string]any{"product_id": line.ProductID, "qty": line.Quantity}
		idQty[i] = map[string]any{"id": line.ProductID, "qty": line.Quantity}
		lineQuantity[i] = map[string]any{"product_id": line.ProductID, "quantity": line.Quantity}
	}

	withAddress := func(payload map[string]any) map[string]any {
		if address != "" {
			payload["destination"] = address
			payload["address"] = address
		}
		return payload
	}

	return []any{
		withAddress(map[string]any{"items": productQty}),
		withAddress(map[string]any{"lines": lineQuantity}),
		withAddress(map[string]any{"cart": idQty}),
		withAddress(map[string]any{"products": idQty}),
		map[string]any{"order": withAddress(map[string]any{"items": productQty})},
		withAddress(map[string]any{"items": idQty}),
	}
}

// claimCandidates parameterizes the claim endpoint templates with the order
// id. The primary path gets a trailing PUT fallback for backends that model
// claiming as an update.
func claimCandidates(orderID string) []negotiation.Candidate {
	body := map[string]any{}
	return []negotiation.Candidate{
		{Method: http.MethodPost, Path: fmt.Sprintf("/api/courier/orders/%s/claim", orderID), Body: body},
		{Method: http.MethodPost, Path: fmt.Sprintf("/api/orders/%s/claim", orderID), Body: body},
		{Method: http.MethodPost, Path: fmt.Sprintf("/api/courier/claim/%s", orderID), Body: body},
		{Method: http.MethodPut, Path: fmt.Sprintf("/api/courier/orders/%s/claim", orderID), Body: body},
	}
}

func statusCandidates(orderID string, wireToken string) []negotiation.Candidate {
	body := map[string]any{"status": wireToken}
	return []negotiation.Candidate{
		{Method: http.MethodPost, Path: fmt.Sprintf("/api/courier/orders/%s/status", orderID), Body: body},
		{Method: http.MethodPost, Path: fmt.Sprintf("/api/orders/%s/status", orderID), Body: body},
	}
}

func etaCandidates(orderID string, minutes int) []negotiation.Candidate {
	body := map[string]any{"minutes": minutes}
	return []negotiation.Candidate{
		{Method: http.MethodPut, Path: fmt.Sprintf("/api/courier/orders/%s/eta", orderID), Body: body},
		{Method: http.MethodPut, Path: fmt.Sprintf("/api/orders/%s/eta", orderID), Body: body},
	}
}

func locationCandidates(orderID string, lat float64, lng float64) []negotiation.Candidate {
	body := map[string]any{"lat": lat, "lng": lng}
	return []negotiation.Candidate{
		{Method: http.MethodPut, Path: fmt.Sprintf("/api/courier/orders/%s/location", orderID), Body: body},
		{Method: http.MethodPut, Path: fmt.Sprintf("/api/orders/%s/location", orderID), Body: body},
	}
}
