package services

import (
	"context"
	"fmt"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/ports"
)

// AuditTx is the part of a unit of work the audit trail writes through.
type AuditTx interface {
	AuditRepository() ports.AuditRepository
}

// AuditRecord is what a caller wants written. ActorID is nil for system writes.
type AuditRecord struct {
	TenantID kernel.UUID
	Action   audit.Action
	Entity   string
	EntityID string
	Meta     map[string]any
	ActorID  *kernel.UUID
}

type AuditTrail struct {
	clock kernel.Clock
}

func NewAuditTrail(clock kernel.Clock) AuditTrail {
	return AuditTrail{clock: clock}
}

// Write appends the record inside tx. A failure must abort the caller's
// transaction, so it is always returned.
func (a AuditTrail) Write(ctx context.Context, tx AuditTx, record AuditRecord) error {
	entry, err := audit.NewEntry(
		record.TenantID,
		record.Action,
		record.Entity,
		record.EntityID,
		record.Meta,
		record.ActorID,
		a.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err = tx.AuditRepository().Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit %s: %w", record.Action, err)
	}
	return nil
}
