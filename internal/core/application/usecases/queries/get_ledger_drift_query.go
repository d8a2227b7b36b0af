package queries

import (
	"errors"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetLedgerDriftQueryIsNotConstructed = errors.New(
		"GetLedgerDriftQuery must be created via NewGetLedgerDriftQuery constructor",
	)
)

// GetLedgerDriftQuery finds orders whose current total no longer matches what
// the commission ledger billed for them. Orders without ledger rows are not
// reported. A nil tenant scans every tenant.
type GetLedgerDriftQuery struct {
	tenantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLedgerDriftQuery(tenantID *kernel.UUID) (GetLedgerDriftQuery, error) {
	if tenantID != nil {
		if err := tenantID.Validate(); err != nil {
			return GetLedgerDriftQuery{}, err
		}
	}
	return GetLedgerDriftQuery{tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLedgerDriftQuery) TenantID() *kernel.UUID {
	return q.tenantID
}

func (q GetLedgerDriftQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerDriftQueryIsNotConstructed)
}

// LedgerDrift is positive when the order grew past the billed total and
// negative after a downsell.
type LedgerDrift struct {
	OrderID      kernel.UUID
	TenantID     kernel.UUID
	OrderNumber  string
	Status       string
	CurrentTotal decimal.Decimal
	BilledTotal  decimal.Decimal
	Drift        decimal.Decimal
	LedgerRows   int
}
