// Package audit describes the append-only audit log written alongside every
// order mutation.
package audit

import (
	"errors"
	"strings"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"
)

type Action string

const (
	OrderCreated       Action = "ORDER_CREATED"
	OrderConfirmed     Action = "ORDER_CONFIRMED"
	OrderStatusChanged Action = "ORDER_STATUS_CHANGED"
	OrderTotalUpdated  Action = "ORDER_TOTAL_UPDATED"
	// CommissionDownsell flags a total that dropped below what was billed.
	CommissionDownsell Action = "COMMISSION_DOWNSELL_ANOMALY"
)

// Entities named by audit rows.
const (
	EntityOrder            = "order"
	EntityCommissionLedger = "commission_ledger"
)

// Entry is one immutable audit row. ActorID is nil for system writes.
type Entry struct {
	ID        kernel.UUID
	TenantID  kernel.UUID
	Action    Action
	Entity    string
	EntityID  string
	Meta      map[string]any
	ActorID   *kernel.UUID
	CreatedAt time.Time
}

func NewEntry(
	tenantID kernel.UUID,
	action Action,
	entity string,
	entityID string,
	meta map[string]any,
	actorID *kernel.UUID,
	now time.Time,
) (*Entry, error) {
	var actionErr, entityErr error
	if strings.TrimSpace(string(action)) == "" {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if strings.TrimSpace(entity) == "" || strings.TrimSpace(entityID) == "" {
		entityErr = errs.NewValueIsRequiredError("entity")
	}
	if err := errors.Join(tenantID.Validate(), actionErr, entityErr); err != nil {
		return nil, err
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return &Entry{
		ID:        kernel.NewUUID(),
		TenantID:  tenantID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Meta:      meta,
		ActorID:   actorID,
		CreatedAt: now,
	}, nil
}
