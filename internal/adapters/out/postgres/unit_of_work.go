// Package postgres provides the GORM-based Unit of Work. Each unit of work
// owns at most one database transaction; repositories it hands out after
// Begin run inside that transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id, tenantID)
//	...
//	return uow.Commit(ctx)
//
// Row locks taken inside the transaction wait at most the configured lock
// timeout. A wait that runs out surfaces as a retryable
// errs.TransactionAbortError.
package postgres

import (
	"context"
	"fmt"
	"time"

	"folio/internal/adapters/out/postgres/auditrepo"
	"folio/internal/adapters/out/postgres/commissionrepo"
	"folio/internal/adapters/out/postgres/orderrepo"
	"folio/internal/adapters/out/postgres/pgerr"
	"folio/internal/adapters/out/postgres/statsrepo"
	"folio/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory. A zero lockTimeout leaves the
// server default in place.
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, lockTimeout: f.lockTimeout}
}

// GormUnitOfWork is not safe for concurrent use; each goroutine creates its own.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	lockTimeout time.Duration
}

// Begin is a no-op when a transaction is already active.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Wrap("begin transaction", "transaction", tx.Error)
	}

	if uow.lockTimeout > 0 {
		// SET does not accept bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			_ = tx.Rollback().Error
			return pgerr.Wrap("set lock timeout", "transaction", err)
		}
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Wrap("commit transaction", "transaction", err)
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the pool outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ContractRepository() ports.ContractRepository {
	return commissionrepo.NewGormContractRepository(uow.conn())
}

func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return commissionrepo.NewGormLedgerRepository(uow.conn())
}

func (uow *GormUnitOfWork) DailyStatsRepository() ports.DailyStatsRepository {
	return statsrepo.NewGormDailyStatsRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}
