package ports

import (
	"context"

	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
)

// ContractRepository stores the single billing contract of each tenant.
type ContractRepository interface {
	// GetByTenant returns an ObjectNotFoundError when the tenant has no contract.
	GetByTenant(ctx context.Context, tenantID kernel.UUID) (*commission.Contract, error)

	// AddIfAbsent inserts the contract unless the tenant already has one.
	// A concurrent insert for the same tenant is not an error; callers re-read.
	AddIfAbsent(ctx context.Context, contract *commission.Contract) error
}

// LedgerRepository appends commission ledger rows. Rows are never updated.
type LedgerRepository interface {
	Add(ctx context.Context, entry *commission.Entry) error

	// ListByOrder returns every row of an order, oldest first.
	ListByOrder(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) ([]*commission.Entry, error)
}
