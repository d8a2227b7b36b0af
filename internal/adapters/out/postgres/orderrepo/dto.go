// Package orderrepo maps order aggregates onto the orders table.
package orderrepo

import (
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Order numbers are unique per tenant.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_number,priority:1"`
	OrderNumber       string          `gorm:"size:32;not null;uniqueIndex:idx_orders_tenant_number,priority:2"`
	BranchID          *uuid.UUID      `gorm:"type:uuid;index"`
	ResponsibleUserID uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerName      string          `gorm:"size:160;not null"`
	CustomerPhone     string          `gorm:"size:32;not null"`
	Description       string          `gorm:"type:text"`
	DeliveryDate      *time.Time
	Total             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Advance           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Status            string          `gorm:"size:20;not null;index"`
	LegacyStatus      string          `gorm:"size:20;not null"`
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      string `gorm:"size:500"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	var branchID *uuid.UUID
	if s.BranchID != nil {
		raw := s.BranchID.Bytes()
		branchID = &raw
	}

	return OrderDTO{
		ID:                s.ID.Bytes(),
		TenantID:          s.TenantID.Bytes(),
		OrderNumber:       s.Number,
		BranchID:          branchID,
		ResponsibleUserID: s.ResponsibleUserID.Bytes(),
		CustomerName:      s.CustomerName,
		CustomerPhone:     s.CustomerPhone.String(),
		Description:       s.Description,
		DeliveryDate:      s.DeliveryDate,
		Total:             s.Total,
		Advance:           s.Advance,
		Status:            s.Status.String(),
		LegacyStatus:      string(s.Status.Legacy()),
		ConfirmedAt:       s.ConfirmedAt,
		CancelledAt:       s.CancelledAt,
		CancelReason:      s.CancelReason,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.ResponsibleUserID[:])
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

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                id,
		Number:            dto.OrderNumber,
		TenantID:          tenantID,
		BranchID:          branchID,
		ResponsibleUserID: userID,
		CustomerName:      dto.CustomerName,
		CustomerPhone:     kernel.RestorePhone(dto.CustomerPhone),
		Description:       dto.Description,
		DeliveryDate:      dto.DeliveryDate,
		Total:             dto.Total,
		Advance:           dto.Advance,
		Status:            status,
		ConfirmedAt:       dto.ConfirmedAt,
		CancelledAt:       dto.CancelledAt,
		CancelReason:      dto.CancelReason,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}
