// Package statsrepo stores the daily sales rollup and the markers of orders
// already counted in it.
package statsrepo

import (
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/stats"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DailyStatsDTO is keyed by (date, tenant, branch). Orders without a branch
// are stored under uuid.Nil so the key stays NOT NULL and unique.
type DailyStatsDTO struct {
	Date        time.Time       `gorm:"type:date;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrdersCount int64           `gorm:"not null;default:0"`
	TotalSales  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	UpdatedAt   time.Time
}

func (DailyStatsDTO) TableName() string {
	return "daily_sales_stats"
}

// SaleRegistrationDTO marks an order as counted in the rollup.
type SaleRegistrationDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RegisteredAt time.Time `gorm:"not null"`
}

func (SaleRegistrationDTO) TableName() string {
	return "sales_registrations"
}

func branchColumn(branchID *kernel.UUID) uuid.UUID {
	if branchID == nil {
		return uuid.Nil
	}
	return branchID.Bytes()
}

func toDomain(dto DailyStatsDTO) (*stats.DailyStats, error) {
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if dto.BranchID != uuid.Nil {
		bID, branchErr := kernel.UUIDFromBytes(dto.BranchID[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchID = &bID
	}

	result := stats.NewDailyStats(stats.NewKey(dto.Date, tenantID, branchID))
	result.OrdersCount = dto.OrdersCount
	result.TotalSales = dto.TotalSales
	return result, nil
}
