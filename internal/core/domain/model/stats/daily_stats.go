// Package stats holds the per-day sales rollup.
package stats

import (
	"time"

	"folio/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Key scopes a rollup row. BranchID is nil for orders created outside a branch.
type Key struct {
	Date     time.Time
	TenantID kernel.UUID
	BranchID *kernel.UUID
}

// NewKey truncates date to its calendar day.
func NewKey(date time.Time, tenantID kernel.UUID, branchID *kernel.UUID) Key {
	y, m, d := date.Date()
	key := Key{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), TenantID: tenantID}
	if branchID != nil {
		id := *branchID
		key.BranchID = &id
	}
	return key
}

// Matches compares scopes, treating two nil branches as equal.
func (k Key) Matches(other Key) bool {
	if !k.Date.Equal(other.Date) || !k.TenantID.IsEqual(other.TenantID) {
		return false
	}
	if k.BranchID == nil || other.BranchID == nil {
		return k.BranchID == nil && other.BranchID == nil
	}
	return k.BranchID.IsEqual(*other.BranchID)
}

// DailyStats is the cumulative sales of one tenant branch on one business day.
type DailyStats struct {
	Key         Key
	OrdersCount int64
	TotalSales  decimal.Decimal
}

func NewDailyStats(key Key) *DailyStats {
	return &DailyStats{Key: key, TotalSales: decimal.Zero}
}

// RegisterSale counts one sold order.
func (s *DailyStats) RegisterSale(total decimal.Decimal) {
	s.OrdersCount++
	s.TotalSales = s.TotalSales.Add(total)
}
