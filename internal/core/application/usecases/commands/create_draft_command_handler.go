package commands

import (
	"context"
	"log/slog"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
)

// CreateDraftCommandHandler persists a new DRAFT order together with its
// ORDER_CREATED audit row.
type CreateDraftCommandHandler struct {
	uowFactory OrderUoWFactory
	trail      services.AuditTrail
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCreateDraftCommandHandler(
	uowFactory OrderUoWFactory,
	trail services.AuditTrail,
	clock kernel.Clock,
	logger *slog.Logger,
) CreateDraftCommandHandler {
	return CreateDraftCommandHandler{
		uowFactory: uowFactory,
		trail:      trail,
		clock:      clock,
		logger:     logger.With("component", "create_draft_handler"),
	}
}

func (h CreateDraftCommandHandler) Handle(ctx context.Context, cmd CreateDraftCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	input := cmd.Input()
	draft, err := order.NewDraft(order.DraftParams{
		ID:            kernel.NewUUID(),
		Number:        input.Number,
		Owner:         cmd.Actor(),
		CustomerName:  input.CustomerName,
		CustomerPhone: cmd.Phone(),
		Description:   input.Description,
		DeliveryDate:  input.DeliveryDate,
		Total:         input.Total,
		Advance:       input.Advance,
		Now:           h.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, abort("create draft", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, draft); err != nil {
		return nil, abort("create draft", err)
	}

	userID := cmd.Actor().UserID()
	if err = h.trail.Write(ctx, uow, services.AuditRecord{
		TenantID: draft.TenantID(),
		Action:   audit.OrderCreated,
		Entity:   audit.EntityOrder,
		EntityID: draft.ID().String(),
		Meta: map[string]any{
			"orderNumber": draft.Number(),
			"status":      draft.Status().String(),
			"total":       draft.Total().String(),
		},
		ActorID: &userID,
	}); err != nil {
		return nil, abort("create draft", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, abort("create draft", err)
	}

	h.logger.InfoContext(ctx, "Draft created", "order_id", draft.ID().String(), "order_number", draft.Number())
	return draft, nil
}
