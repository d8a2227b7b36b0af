package ports

import (
	"context"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/stats"

	"github.com/shopspring/decimal"
)

// DailyStatsRepository maintains the per-day sales rollup.
type DailyStatsRepository interface {
	// MarkSaleRegistered records that the order was counted as a sale. It
	// returns false when the order had already been counted.
	MarkSaleRegistered(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID, at time.Time) (bool, error)

	// Increment locks the row for key, creating it when missing, then adds one
	// order and total to it.
	Increment(ctx context.Context, key stats.Key, total decimal.Decimal) error

	// Get returns an ObjectNotFoundError when no sale was registered for key.
	Get(ctx context.Context, key stats.Key) (*stats.DailyStats, error)
}
