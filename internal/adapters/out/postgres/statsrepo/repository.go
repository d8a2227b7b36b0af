package statsrepo

import (
	"context"
	"errors"
	"time"

	"folio/internal/adapters/out/postgres/pgerr"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/stats"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyStatsRepository implements ports.DailyStatsRepository.
type GormDailyStatsRepository struct {
	db *gorm.DB
}

func NewGormDailyStatsRepository(db *gorm.DB) *GormDailyStatsRepository {
	return &GormDailyStatsRepository{db: db}
}

func (r *GormDailyStatsRepository) MarkSaleRegistered(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	at time.Time,
) (bool, error) {
	dto := SaleRegistrationDTO{
		OrderID:      orderID.Bytes(),
		TenantID:     tenantID.Bytes(),
		RegisteredAt: at,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, pgerr.Wrap("mark sale registered", "order", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Increment is a single upsert. The conflicting row stays locked until the
// surrounding transaction ends, so concurrent sales for one key serialize.
func (r *GormDailyStatsRepository) Increment(ctx context.Context, key stats.Key, total decimal.Decimal) error {
	dto := DailyStatsDTO{
		Date:        key.Date,
		TenantID:    key.TenantID.Bytes(),
		BranchID:    branchColumn(key.BranchID),
		OrdersCount: 1,
		TotalSales:  total,
		UpdatedAt:   time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}, {Name: "tenant_id"}, {Name: "branch_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"orders_count": gorm.Expr("daily_sales_stats.orders_count + 1"),
				"total_sales":  gorm.Expr("daily_sales_stats.total_sales + EXCLUDED.total_sales"),
				"updated_at":   gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(&dto).Error
	return pgerr.Wrap("increment daily stats", "dailyStats", err)
}

func (r *GormDailyStatsRepository) Get(ctx context.Context, key stats.Key) (*stats.DailyStats, error) {
	var dto DailyStatsDTO
	err := r.db.WithContext(ctx).
		Where("date = ? AND tenant_id = ? AND branch_id = ?",
			key.Date.Format(dateLayout), key.TenantID.Bytes(), branchColumn(key.BranchID)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dailyStats", key.Date.Format(dateLayout))
		}
		return nil, pgerr.Wrap("get daily stats", "dailyStats", err)
	}
	return toDomain(dto)
}
