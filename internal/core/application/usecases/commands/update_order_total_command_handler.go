package commands

import (
	"context"
	"log/slog"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
)

// UpdateOrderTotalCommandHandler edits an order's amounts under the row lock.
// It does not touch the ledger: a changed total is reconciled the next time
// the order enters CONFIRMED or IN_PRODUCTION, and reported as drift otherwise.
type UpdateOrderTotalCommandHandler struct {
	uowFactory OrderUoWFactory
	trail      services.AuditTrail
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewUpdateOrderTotalCommandHandler(
	uowFactory OrderUoWFactory,
	trail services.AuditTrail,
	clock kernel.Clock,
	logger *slog.Logger,
) UpdateOrderTotalCommandHandler {
	return UpdateOrderTotalCommandHandler{
		uowFactory: uowFactory,
		trail:      trail,
		clock:      clock,
		logger:     logger.With("component", "update_order_total_handler"),
	}
}

func (h UpdateOrderTotalCommandHandler) Handle(ctx context.Context, cmd UpdateOrderTotalCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, abort("update order total", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID(), cmd.Actor().TenantID())
	if err != nil {
		return nil, abort("update order total", err)
	}

	previousTotal := o.Total()
	advance := o.Advance()
	if cmd.Advance() != nil {
		advance = *cmd.Advance()
	}

	if err = o.ChangeAmounts(cmd.Total(), advance, h.clock.Now()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, abort("update order total", err)
	}

	userID := cmd.Actor().UserID()
	if err = h.trail.Write(ctx, uow, services.AuditRecord{
		TenantID: o.TenantID(),
		Action:   audit.OrderTotalUpdated,
		Entity:   audit.EntityOrder,
		EntityID: o.ID().String(),
		Meta: map[string]any{
			"previousTotal": previousTotal.String(),
			"total":         o.Total().String(),
			"advance":       o.Advance().String(),
			"status":        o.Status().String(),
		},
		ActorID: &userID,
	}); err != nil {
		return nil, abort("update order total", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, abort("update order total", err)
	}

	h.logger.InfoContext(ctx, "Order total updated",
		"order_id", o.ID().String(), "previous_total", previousTotal.String(), "total", o.Total().String())
	return o, nil
}
