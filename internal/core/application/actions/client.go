package actions

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"orderlink/internal/core/application/negotiation"
	"orderlink/internal/core/domain/model/kernel"
	"orderlink/internal/core/domain/model/order"
	"orderlink/internal/core/ports"
	"orderlink/internal/pkg/bus"
	"orderlink/internal/pkg/errs"
)

// CartLine is one cart entry submitted at checkout.
type CartLine struct {
	ProductID       string
	Name            string
	Quantity        int
	PriceMinorUnits int64
}

// Validate enforces the client-side preconditions for a cart line.
func (l CartLine) Validate() error {
	if strings.TrimSpace(l.ProductID) == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	if l.PriceMinorUnits < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", l.PriceMinorUnits))
	}
	return nil
}

// Client builds the candidate sets for each logical order operation and
// drives them through the negotiator, interpreting results through the
// canonical order model.
type Client struct {
	negotiator *negotiation.Negotiator
	store      ports.KeyValueStore
	events     *bus.Bus
	logger     *slog.Logger
}

// NewClient creates an action client. store and events may be nil: without a
// store no saved delivery address is attached to checkout payloads, and
// without a bus no order-submitted events are published.
func NewClient(negotiator *negotiation.Negotiator, store ports.KeyValueStore, events *bus.Bus, logger *slog.Logger) *Client {
	return &Client{
		negotiator: negotiator,
		store:      store,
		events:     events,
		logger:     logger.With("component", "order_actions"),
	}
}

// SubmitOrder negotiates the checkout of the given cart lines and returns the
// server-assigned order id (empty when the server did not return one).
// A previously saved delivery address is recovered from the local store and
// attached to every payload shape. On success an order-submitted event is
// published so the cart owner clears the cart.
func (c *Client) SubmitOrder(ctx context.Context, lines []CartLine) (string, error) {
	if len(lines) == 0 {
		return "", errs.NewValueIsRequiredError("cart lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return "", err
		}
	}

	result := c.negotiator.Negotiate(ctx, OpSubmitOrder, submitCandidates(lines, c.savedAddress(ctx)))
	if err := resultError(OpSubmitOrder, result); err != nil {
		return "", err
	}

	orderID := resolveOrderID(result.DataObject())
	if c.events != nil {
		c.events.Publish(bus.TopicOrderSubmitted, orderID)
	}
	c.logger.InfoContext(ctx, "Order submitted", "order_id", orderID)
	return orderID, nil
}

// ClaimOrder negotiates claiming the order for the acting courier.
func (c *Client) ClaimOrder(ctx context.Context, orderID string) error {
	if err := requireOrderID(orderID); err != nil {
		return err
	}
	return resultError(OpClaimOrder, c.negotiator.Negotiate(ctx, OpClaimOrder, claimCandidates(orderID)))
}

// SetStatus negotiates a status change to the given canonical target status.
// The status is submitted in the backends' wire vocabulary.
func (c *Client) SetStatus(ctx context.Context, orderID string, status order.Status) error {
	if err := requireOrderID(orderID); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	return resultError(OpSetStatus,
		c.negotiator.Negotiate(ctx, OpSetStatus, statusCandidates(orderID, status.WireToken())))
}

// SetEta negotiates setting the order's estimated arrival, in minutes from
// now. Negative values are rejected before any network call.
func (c *Client) SetEta(ctx context.Context, orderID string, minutes int) error {
	if err := requireOrderID(orderID); err != nil {
		return err
	}
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("eta minutes",
			fmt.Errorf("%d is negative", minutes))
	}
	return resultError(OpSetEta,
		c.negotiator.Negotiate(ctx, OpSetEta, etaCandidates(orderID, minutes)))
}

// SetLocation negotiates reporting the courier's position for the order.
// The point must come from kernel.NewGeoPoint, which guarantees finite,
// in-range coordinates.
func (c *Client) SetLocation(ctx context.Context, orderID string, point kernel.GeoPoint) error {
	if err := requireOrderID(orderID); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}
	return resultError(OpSetLocation,
		c.negotiator.Negotiate(ctx, OpSetLocation, locationCandidates(orderID, point.Lat(), point.Lng())))
}

// ListOpen fetches the pool of unassigned orders. Entries without a
// resolvable identity are dropped. When the reduction to
// unassigned-or-open entries is non-empty it replaces the full list; some
// backends only expose an "all orders" route, and the reduction deduces the
// open pool from it.
func (c *Client) ListOpen(ctx context.Context) ([]order.Order, error) {
	orders, err := c.list(ctx, OpListOpen, openOrderPaths)
	if err != nil {
		return nil, err
	}

	open := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if o.AssignedCourier == "" || o.Status == order.Open {
			open = append(open, o)
		}
	}
	if len(open) > 0 {
		return open, nil
	}
	return orders, nil
}

// ListMine fetches the acting courier's own orders.
func (c *Client) ListMine(ctx context.Context) ([]order.Order, error) {
	return c.list(ctx, OpListMine, mineOrderPaths)
}

func (c *Client) list(ctx context.Context, operation string, paths []string) ([]order.Order, error) {
	result := c.negotiator.NegotiateList(ctx, operation, paths)
	if err := resultError(operation, result); err != nil {
		return nil, err
	}

	raw := order.UnwrapList(result.Data)
	orders := make([]order.Order, 0, len(raw))
	for _, entry := range raw {
		normalized, err := order.NormalizeOrder(entry)
		if err != nil {
			// No usable identity: drop instead of inventing a phantom order.
			continue
		}
		orders = append(orders, normalized)
	}
	return orders, nil
}

// savedAddress recovers the previously chosen delivery address, if any.
// Store failures degrade to "no address" rather than blocking checkout.
func (c *Client) savedAddress(ctx context.Context) string {
	if c.store == nil {
		return ""
	}
	address, err := c.store.Get(ctx, ports.KeyDeliveryAddress)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to read saved delivery address", "error", err)
		return ""
	}
	return address
}

func requireOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}

// resultError maps a non-success negotiation result onto the error taxonomy.
func resultError(operation string, result negotiation.Result) error {
	switch result.Outcome {
	case negotiation.OutcomeSuccess:
		return nil
	case negotiation.OutcomeAuthRequired:
		return errs.NewAuthRequiredError(operation)
	default:
		return errs.NewIntegrationExhaustedError(operation, result.Detail)
	}
}

// resolveOrderID digs the new order's identity out of the success payload,
// checking the known top-level and nested spots.
func resolveOrderID(data map[string]any) string {
	if id := stringifyID(data["order_id"]); id != "" {
		return id
	}
	if id := stringifyID(data["id"]); id != "" {
		return id
	}
	if nested, ok := data["order"].(map[string]any); ok {
		if id := stringifyID(nested["id"]); id != "" {
			return id
		}
	}
	if nested, ok := data["data"].(map[string]any); ok {
		if id := stringifyID(nested["id"]); id != "" {
			return id
		}
	}
	return ""
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
