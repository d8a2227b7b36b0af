package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it hands out
// after Begin share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active, so a deferred
	// Rollback after a successful Commit is harmless.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ContractRepository() ContractRepository
	LedgerRepository() LedgerRepository
	DailyStatsRepository() DailyStatsRepository
	AuditRepository() AuditRepository
}
