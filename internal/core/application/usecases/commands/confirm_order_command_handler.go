package commands

import (
	"context"

	"folio/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler confirms a DRAFT order. In the same transaction
// it writes the audit row, records the original commission entry and adds the
// sale to today's stats. Any failure leaves the order in DRAFT.
//
// Example:
//
//	cmd, _ := NewConfirmOrderCommand(orderID, actor)
//	confirmed, err := handler.Handle(ctx, cmd)
//	if errs.Classify(err) == errs.KindRetryable {
//	    // lock contention, retry with the same input
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	lifecycle  OrderLifecycle
}

func NewConfirmOrderCommandHandler(uowFactory LifecycleUoWFactory, lifecycle OrderLifecycle) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, abort("confirm order", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	confirmed, err := h.lifecycle.transition(ctx, uow, cmd.Actor(), cmd.OrderID(), order.Confirmed, "")
	if err != nil {
		return nil, abort("confirm order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, abort("confirm order", err)
	}

	h.lifecycle.logger.InfoContext(ctx, "Order confirmed",
		"order_id", confirmed.ID().String(), "total", confirmed.Total().String())
	return confirmed, nil
}
