// Package commissionrepo persists commission contracts and the append-only
// commission ledger.
package commissionrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractDTO is one row of commission_contracts. A tenant has at most one.
type ContractDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Type         string          `gorm:"size:20;not null"`
	RateValue    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BillingCycle string          `gorm:"size:20;not null"`
	IsActive     bool            `gorm:"not null"`
	CreatedAt    time.Time
}

func (ContractDTO) TableName() string {
	return "commission_contracts"
}

// LedgerEntryDTO is one row of commission_ledger. Rows are inserted, never
// updated.
type LedgerEntryDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_order,priority:1"`
	SourceOrderID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_order,priority:2"`
	BranchID           *uuid.UUID      `gorm:"type:uuid"`
	OrderTotalSnapshot decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CommissionAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Status             string          `gorm:"size:20;not null;index"`
	Kind               string          `gorm:"size:20;not null"`
	Meta               []byte          `gorm:"type:jsonb"`
	CreatedAt          time.Time       `gorm:"index"`
}

func (LedgerEntryDTO) TableName() string {
	return "commission_ledger"
}

func contractFromDomain(c *commission.Contract) ContractDTO {
	return ContractDTO{
		ID:           c.ID().Bytes(),
		TenantID:     c.TenantID().Bytes(),
		Type:         string(c.Type()),
		RateValue:    c.RateValue(),
		BillingCycle: string(c.BillingCycle()),
		IsActive:     c.IsActive(),
		CreatedAt:    c.CreatedAt(),
	}
}

func contractToDomain(dto ContractDTO) (*commission.Contract, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return commission.NewContract(
		id,
		tenantID,
		commission.ContractType(dto.Type),
		dto.RateValue,
		commission.BillingCycle(dto.BillingCycle),
		dto.IsActive,
		dto.CreatedAt,
	)
}

func entryFromDomain(e *commission.Entry) (LedgerEntryDTO, error) {
	s := e.Snapshot()

	meta, err := json.Marshal(s.Meta)
	if err != nil {
		return LedgerEntryDTO{}, fmt.Errorf("encode ledger meta: %w", err)
	}

	var branchID *uuid.UUID
	if s.BranchID != nil {
		raw := s.BranchID.Bytes()
		branchID = &raw
	}

	return LedgerEntryDTO{
		ID:                 s.ID.Bytes(),
		TenantID:           s.TenantID.Bytes(),
		SourceOrderID:      s.SourceOrderID.Bytes(),
		BranchID:           branchID,
		OrderTotalSnapshot: s.OrderTotalSnapshot,
		CommissionAmount:   s.CommissionAmount,
		Status:             string(s.Status),
		Kind:               string(s.Kind),
		Meta:               meta,
		CreatedAt:          s.CreatedAt,
	}, nil
}

func entryToDomain(dto LedgerEntryDTO) (*commission.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.SourceOrderID[:])
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if dto.BranchID != nil {
		bID, branchErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchID = &bID
	}

	meta := map[string]string{}
	if len(dto.Meta) > 0 {
		if err := json.Unmarshal(dto.Meta, &meta); err != nil {
			return nil, fmt.Errorf("decode ledger meta: %w", err)
		}
	}

	return commission.RestoreEntry(commission.EntrySnapshot{
		ID:                 id,
		TenantID:           tenantID,
		BranchID:           branchID,
		SourceOrderID:      orderID,
		OrderTotalSnapshot: dto.OrderTotalSnapshot,
		CommissionAmount:   dto.CommissionAmount,
		Status:             commission.EntryStatus(dto.Status),
		Kind:               commission.EntryKind(dto.Kind),
		Meta:               meta,
		CreatedAt:          dto.CreatedAt,
	})
}
