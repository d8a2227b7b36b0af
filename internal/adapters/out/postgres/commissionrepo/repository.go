package commissionrepo

import (
	"context"
	"errors"

	"folio/internal/adapters/out/postgres/pgerr"
	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormContractRepository struct {
	db *gorm.DB
}

func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

func (r *GormContractRepository) GetByTenant(ctx context.Context, tenantID kernel.UUID) (*commission.Contract, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dto ContractDTO
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID.Bytes()).First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contract", tenantID.String())
		}
		return nil, pgerr.Wrap("get contract", "contract", err)
	}
	return contractToDomain(dto)
}

// AddIfAbsent relies on the unique tenant index. A losing concurrent insert
// waits for the winner's transaction and then does nothing.
func (r *GormContractRepository) AddIfAbsent(ctx context.Context, contract *commission.Contract) error {
	dto := contractFromDomain(contract)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "tenant_id"}}, DoNothing: true}).
		Create(&dto).Error
	return pgerr.Wrap("add contract", "contract", err)
}

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) Add(ctx context.Context, entry *commission.Entry) error {
	dto, err := entryFromDomain(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add ledger entry", "ledgerEntry", err)
	}
	return nil
}

func (r *GormLedgerRepository) ListByOrder(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
) ([]*commission.Entry, error) {
	var dtos []LedgerEntryDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND source_order_id = ?", tenantID.Bytes(), orderID.Bytes()).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("list ledger entries", "ledgerEntry", err)
	}

	entries := make([]*commission.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := entryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
