package commands

import (
	"context"

	"folio/internal/core/domain/model/order"
)

// TransitionStatusCommandHandler applies any edge of the status table. Edges
// outside the table are rejected whatever the actor's role.
type TransitionStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	lifecycle  OrderLifecycle
}

func NewTransitionStatusCommandHandler(
	uowFactory LifecycleUoWFactory,
	lifecycle OrderLifecycle,
) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

func (h TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, abort("transition status", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.lifecycle.transition(ctx, uow, cmd.Actor(), cmd.OrderID(), cmd.Target(), cmd.Reason())
	if err != nil {
		return nil, abort("transition status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, abort("transition status", err)
	}

	h.lifecycle.logger.InfoContext(ctx, "Order status changed",
		"order_id", o.ID().String(), "status", o.Status().String())
	return o, nil
}
