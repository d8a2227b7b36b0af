package commands

import (
	"context"
	"log/slog"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
)

// OrderLifecycle drives status changes. Its collaborators are injected so the
// lifecycle can be exercised against any unit of work.
type OrderLifecycle struct {
	trail      services.AuditTrail
	ledger     services.LedgerEngine
	aggregator services.SalesAggregator
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewOrderLifecycle(
	trail services.AuditTrail,
	ledger services.LedgerEngine,
	aggregator services.SalesAggregator,
	clock kernel.Clock,
	logger *slog.Logger,
) OrderLifecycle {
	return OrderLifecycle{
		trail:      trail,
		ledger:     ledger,
		aggregator: aggregator,
		clock:      clock,
		logger:     logger.With("component", "order_lifecycle"),
	}
}

// transition locks the order, moves it to target and runs the side effects
// of the edge, all inside uow:
//   - entering CONFIRMED or IN_PRODUCTION reconciles the commission ledger
//   - leaving DRAFT for CONFIRMED counts the sale
//
// The caller commits.
func (l OrderLifecycle) transition(
	ctx context.Context,
	uow LifecycleUoW,
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
	reason string,
) (*order.Order, error) {
	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID, actor.TenantID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.TransitionTo(target, l.clock.Now(), reason); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	action := audit.OrderStatusChanged
	if target == order.Confirmed {
		action = audit.OrderConfirmed
	}
	meta := map[string]any{
		"from":  from.String(),
		"to":    target.String(),
		"total": o.Total().String(),
	}
	if target == order.Cancelled {
		meta["reason"] = o.CancelReason()
	}

	userID := actor.UserID()
	if err = l.trail.Write(ctx, uow, services.AuditRecord{
		TenantID: o.TenantID(),
		Action:   action,
		Entity:   audit.EntityOrder,
		EntityID: o.ID().String(),
		Meta:     meta,
		ActorID:  &userID,
	}); err != nil {
		return nil, err
	}

	if target == order.Confirmed || target == order.InProduction {
		outcome, err := l.ledger.Process(ctx, uow, o, &userID)
		if err != nil {
			return nil, err
		}
		l.logger.DebugContext(ctx, "Ledger processed", "order_id", o.ID().String(), "outcome", outcome.String())
	}

	if from == order.Draft && target == order.Confirmed {
		if _, err = l.aggregator.RegisterSale(ctx, uow, o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
