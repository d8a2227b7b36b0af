package services

import (
	"context"
	"errors"

	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/ports"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type ContractTx interface {
	ContractRepository() ports.ContractRepository
}

// ContractResolver returns a tenant's billing contract, creating the default
// one in the caller's transaction when the tenant has none.
type ContractResolver struct {
	defaultRate decimal.Decimal
	clock       kernel.Clock
}

func NewContractResolver(defaultRate decimal.Decimal, clock kernel.Clock) ContractResolver {
	return ContractResolver{defaultRate: defaultRate, clock: clock}
}

func (r ContractResolver) Resolve(ctx context.Context, tx ContractTx, tenantID kernel.UUID) (*commission.Contract, error) {
	repo := tx.ContractRepository()

	contract, err := repo.GetByTenant(ctx, tenantID)
	if err == nil {
		return contract, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	contract, err = commission.NewDefaultContract(tenantID, r.defaultRate, r.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = repo.AddIfAbsent(ctx, contract); err != nil {
		return nil, err
	}

	// Re-read: a concurrent transaction may have created the contract first.
	return repo.GetByTenant(ctx, tenantID)
}
