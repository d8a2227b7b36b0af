package queries

import (
	"errors"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetDailySalesQueryIsNotConstructed = errors.New(
		"GetDailySalesQuery must be created via NewGetDailySalesQuery constructor",
	)
)

// GetDailySalesQuery reads the sales rollup for business days in [From, To].
// A nil branch returns every branch of the tenant.
type GetDailySalesQuery struct {
	tenantID kernel.UUID
	branchID *kernel.UUID
	from     time.Time
	to       time.Time

	guard guard.ConstructorGuard
}

// NewGetDailySalesQuery truncates both bounds to their calendar day.
func NewGetDailySalesQuery(
	tenantID kernel.UUID,
	branchID *kernel.UUID,
	from, to time.Time,
) (GetDailySalesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDailySalesQuery{}, err
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return GetDailySalesQuery{}, err
		}
	}

	from, to = day(from), day(to)
	if err := validateRange(from, to.AddDate(0, 0, 1)); err != nil {
		return GetDailySalesQuery{}, err
	}

	return GetDailySalesQuery{
		tenantID: tenantID,
		branchID: branchID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetDailySalesQuery) TenantID() kernel.UUID  { return q.tenantID }
func (q GetDailySalesQuery) BranchID() *kernel.UUID { return q.branchID }
func (q GetDailySalesQuery) From() time.Time        { return q.from }
func (q GetDailySalesQuery) To() time.Time          { return q.to }

func (q GetDailySalesQuery) Validate() error {
	return q.guard.Validate(ErrGetDailySalesQueryIsNotConstructed)
}

// DailySalesLine is one rollup row. BranchID is nil for sales made outside a branch.
type DailySalesLine struct {
	Date        time.Time
	BranchID    *kernel.UUID
	OrdersCount int64
	TotalSales  decimal.Decimal
}

type GetDailySalesQueryResponse struct {
	Lines       []DailySalesLine
	OrdersCount int64
	TotalSales  decimal.Decimal
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
