// Package auditrepo appends rows to the audit_log table.
package auditrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio/internal/adapters/out/postgres/pgerr"
	"folio/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditEntryDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:1"`
	Action    string     `gorm:"size:64;not null;index"`
	Entity    string     `gorm:"size:64;not null;index:idx_audit_tenant_entity,priority:2"`
	EntityID  string     `gorm:"size:64;not null;index:idx_audit_tenant_entity,priority:3"`
	Meta      []byte     `gorm:"type:jsonb"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (AuditEntryDTO) TableName() string {
	return "audit_log"
}

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return fmt.Errorf("encode audit meta: %w", err)
	}

	var actorID *uuid.UUID
	if entry.ActorID != nil {
		raw := entry.ActorID.Bytes()
		actorID = &raw
	}

	dto := AuditEntryDTO{
		ID:        entry.ID.Bytes(),
		TenantID:  entry.TenantID.Bytes(),
		Action:    string(entry.Action),
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Meta:      meta,
		ActorID:   actorID,
		CreatedAt: entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("append audit entry", "auditEntry", err)
	}
	return nil
}
