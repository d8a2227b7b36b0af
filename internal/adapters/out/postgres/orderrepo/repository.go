package orderrepo

import (
	"context"
	"errors"

	"folio/internal/adapters/out/postgres/pgerr"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add order", "orderNumber", err)
	}
	return nil
}

// Update writes every column, including zero values such as an emptied
// cancel reason.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Omit("id", "tenant_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update order", "order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// GetForUpdate issues SELECT ... FOR UPDATE scoped to the tenant. Waiting
// longer than the transaction's lock_timeout fails with a retryable error.
func (r *GormOrderRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
	tenantID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Wrap("lock order", "order", err)
	}

	return toDomain(dto)
}
