// Package http exposes the order lifecycle and the billing reports over a
// JSON API served by echo.
package http

import (
	"context"
	"net/http"

	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/application/usecases/queries"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type (
	DraftCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDraftCommand) (*order.Order, error)
	}

	OrderConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (*order.Order, error)
	}

	StatusTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionStatusCommand) (*order.Order, error)
	}

	TotalUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderTotalCommand) (*order.Order, error)
	}

	CommissionReporter interface {
		Handle(ctx context.Context, query queries.GetCommissionReportQuery) (queries.GetCommissionReportQueryResponse, error)
	}

	DailySalesReader interface {
		Handle(ctx context.Context, query queries.GetDailySalesQuery) (queries.GetDailySalesQueryResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateDraft      DraftCreator
	ConfirmOrder     OrderConfirmer
	TransitionStatus StatusTransitioner
	UpdateTotal      TotalUpdater
	CommissionReport CommissionReporter
	DailySales       DailySalesReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	calendar    kernel.BusinessCalendar
	phoneRegion string
}

// NewServer creates a server. calendar resolves report date ranges and
// phoneRegion is the default region for national customer numbers.
func NewServer(handlers Handlers, calendar kernel.BusinessCalendar, phoneRegion string) *Server {
	return &Server{
		handlers:    handlers,
		calendar:    calendar,
		phoneRegion: phoneRegion,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", RequireActor)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/status", s.TransitionStatus)
	api.PATCH("/orders/:id/total", s.UpdateOrderTotal)
	api.GET("/commissions", s.GetCommissionReport)
	api.GET("/stats/daily", s.GetDailySales)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx, err)
	}

	cmd, err := commands.NewCreateDraftCommand(actorOf(ctx), req.toInput(), s.phoneRegion)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.handlers.CreateDraft.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, newOrderResponse(created))
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	confirmed, err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(confirmed))
}

// TransitionStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionStatusCommand(orderID, target, req.Reason, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	moved, err := s.handlers.TransitionStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(moved))
}

// UpdateOrderTotal handles PATCH /api/v1/orders/:id/total.
func (s *Server) UpdateOrderTotal(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateTotalRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBindError(ctx, err)
	}
	if req.Total == nil {
		return writeError(ctx, errRequired("total"))
	}

	cmd, err := commands.NewUpdateOrderTotalCommand(orderID, *req.Total, req.Advance, actorOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.handlers.UpdateTotal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

// GetCommissionReport handles GET /api/v1/commissions?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both days are inclusive business days; the range defaults to the current
// month up to today.
func (s *Server) GetCommissionReport(ctx echo.Context) error {
	from, to, err := s.dayRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCommissionReportQuery(
		actorOf(ctx).TenantID(),
		s.calendar.StartOf(from),
		s.calendar.StartOf(to.AddDate(0, 0, 1)),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.handlers.CommissionReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newCommissionReportResponse(from, to, report))
}

// GetDailySales handles GET /api/v1/stats/daily?from&to&branch.
func (s *Server) GetDailySales(ctx echo.Context) error {
	from, to, err := s.dayRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var branchID *kernel.UUID
	if raw := ctx.QueryParam("branch"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return writeError(ctx, errInvalid("branch", parseErr))
		}
		branchID = &id
	}

	query, err := queries.NewGetDailySalesQuery(actorOf(ctx).TenantID(), branchID, from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	sales, err := s.handlers.DailySales.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newDailySalesResponse(sales))
}
