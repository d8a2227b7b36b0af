// Package commands contains the operations that change order state. Every
// handler runs in one unit of work: it loads and locks what it changes,
// applies the domain rules, writes the audit trail and commits, or rolls
// everything back on the first failure.
package commands

import (
	"context"

	"folio/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	ContractRepoFactory interface {
		ContractRepository() ports.ContractRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	DailyStatsRepoFactory interface {
		DailyStatsRepository() ports.DailyStatsRepository
	}

	// OrderUoW covers commands that only touch the order and the audit log.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LifecycleUoW covers status changes, which may also bill commission and
	// count the sale.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
		ContractRepoFactory
		LedgerRepoFactory
		DailyStatsRepoFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}
)
