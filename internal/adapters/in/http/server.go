package http

import (
	"errors"
	"net/http"

	"orderlink/internal/core/application/actions"
	"orderlink/internal/core/application/syncer"
	"orderlink/internal/core/domain/model/order"
	"orderlink/internal/core/ports"
	"orderlink/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the integration facade over HTTP. It coordinates between the
// HTTP handlers, the order action client, and the synchronizer; all domain
// decisions live below it.
type Server struct {
	client   *actions.Client
	syncer   *syncer.Synchronizer
	identity ports.Identity
}

// NewServer creates a new HTTP server for the given client, synchronizer, and
// acting identity.
func NewServer(client *actions.Client, synchronizer *syncer.Synchronizer, identity ports.Identity) *Server {
	return &Server{client: client, syncer: synchronizer, identity: identity}
}

// RegisterRoutes attaches all routes to the echo instance. The courier
// workflow routes are gated on the acting identity's role.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/checkout", s.Checkout)

	courier := e.Group("/api/courier", s.requireCourierRole)
	courier.GET("/orders/open", s.GetOpenOrders)
	courier.GET("/orders/mine", s.GetMyOrders)
	courier.POST("/orders/:id/claim", s.ClaimOrder)
	courier.POST("/orders/:id/advance", s.AdvanceOrder)
	courier.POST("/orders/:id/status", s.SetOrderStatus)
	courier.PUT("/orders/:id/eta", s.SetOrderEta)
	courier.PUT("/orders/:id/location", s.SetOrderLocation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

type checkoutRequest struct {
	Items []checkoutItem `json:"items"`
}

type checkoutItem struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	Quantity        int    `json:"qty"`
	PriceMinorUnits int64  `json:"price"`
}

// Checkout handles POST /api/checkout - submits the cart as a new order.
func (s *Server) Checkout(ctx echo.Context) error {
	var req checkoutRequest
	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	lines := make([]actions.CartLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = actions.CartLine{
			ProductID:       item.ProductID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			PriceMinorUnits: item.PriceMinorUnits,
		}
	}

	orderID, err := s.client.SubmitOrder(ctx.Request().Context(), lines)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID})
}

// GetOpenOrders handles GET /api/courier/orders/open - the claimable pool.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	snapshot := s.syncer.Snapshot()
	return ctx.JSON(http.StatusOK, map[string]any{
		"orders": orderViews(snapshot.Open, snapshot.Busy),
	})
}

// GetMyOrders handles GET /api/courier/orders/mine - the courier's own
// orders, partitioned into active and done.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	snapshot := s.syncer.Snapshot()
	return ctx.JSON(http.StatusOK, map[string]any{
		"active": orderViews(snapshot.MineActive, snapshot.Busy),
		"done":   orderViews(snapshot.MineDone, snapshot.Busy),
	})
}

// ClaimOrder handles POST /api/courier/orders/:id/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	if err := s.syncer.Claim(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/courier/orders/:id/advance - moves the order
// to its successor state.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	if err := s.syncer.Advance(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus handles POST /api/courier/orders/:id/status - sets any
// canonical target state. The incoming token is normalized, so aliases and
// localized vocabulary are accepted.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	var req statusRequest
	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	if req.Status == "" {
		return errorResponse(ctx, errs.NewValueIsRequiredError("status"))
	}

	target := order.Normalize(req.Status)
	if err := s.syncer.SetStatus(ctx.Request().Context(), ctx.Param("id"), target); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type etaRequest struct {
	Minutes int `json:"minutes"`
}

// SetOrderEta handles PUT /api/courier/orders/:id/eta.
func (s *Server) SetOrderEta(ctx echo.Context) error {
	var req etaRequest
	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	if err := s.syncer.SetEta(ctx.Request().Context(), ctx.Param("id"), req.Minutes); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderLocation handles PUT /api/courier/orders/:id/location - reports the
// courier's position using the device geolocation capability.
func (s *Server) SetOrderLocation(ctx echo.Context) error {
	if err := s.syncer.SetDeviceLocation(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// requireCourierRole rejects requests whose acting identity lacks the courier
// or admin role.
func (s *Server) requireCourierRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !ports.CanOperateCourierWorkflows(s.identity) {
			return ctx.JSON(http.StatusForbidden, errorBody{
				Code:    http.StatusForbidden,
				Message: "courier role required",
			})
		}
		return next(ctx)
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderView struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	CustomerLabel   string `json:"customer,omitempty"`
	Address         string `json:"address,omitempty"`
	AssignedCourier string `json:"assigned_courier,omitempty"`
	EtaAt           string `json:"eta_at,omitempty"`
	Busy            string `json:"busy,omitempty"`
}

func orderViews(orders []order.Order, busy map[string]syncer.ActionKind) []orderView {
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = orderView{
			ID:              o.ID,
			Status:          o.Status.String(),
			CustomerLabel:   o.CustomerLabel,
			Address:         o.Address,
			AssignedCourier: o.AssignedCourier,
			Busy:            string(busy[o.ID]),
		}
		if o.EtaAt != nil {
			views[i].EtaAt = o.EtaAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
	}
	return views
}

// errorResponse maps the error taxonomy onto HTTP status codes. Unclassified
// errors fall through to 500.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrOrderBusy):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrIntegrationExhausted):
		status = http.StatusBadGateway
	}
	return ctx.JSON(status, errorBody{Code: status, Message: err.Error()})
}
