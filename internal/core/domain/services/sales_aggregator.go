package services

import (
	"context"
	"log/slog"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/model/stats"
	"folio/internal/core/ports"
)

type SalesTx interface {
	DailyStatsRepository() ports.DailyStatsRepository
}

// SalesAggregator adds confirmed orders to the daily sales rollup of their
// tenant branch, dated by the business calendar.
type SalesAggregator struct {
	calendar kernel.BusinessCalendar
	logger   *slog.Logger
}

func NewSalesAggregator(calendar kernel.BusinessCalendar, logger *slog.Logger) SalesAggregator {
	return SalesAggregator{
		calendar: calendar,
		logger:   logger.With("component", "sales_aggregator"),
	}
}

// RegisterSale counts o once. A second call for the same order is a no-op and
// returns false.
func (a SalesAggregator) RegisterSale(ctx context.Context, tx SalesTx, o *order.Order) (bool, error) {
	repo := tx.DailyStatsRepository()

	first, err := repo.MarkSaleRegistered(ctx, o.TenantID(), o.ID(), a.calendar.Now())
	if err != nil {
		return false, err
	}
	if !first {
		a.logger.WarnContext(ctx, "Sale already registered", "order_id", o.ID().String())
		return false, nil
	}

	key := stats.NewKey(a.calendar.Today(), o.TenantID(), o.BranchID())
	if err = repo.Increment(ctx, key, o.Total()); err != nil {
		return false, err
	}
	return true, nil
}
