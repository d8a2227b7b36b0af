package queries

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"
	"folio/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCommissionReportQueryIsNotConstructed = errors.New(
		"GetCommissionReportQuery must be created via NewGetCommissionReportQuery constructor",
	)
)

// GetCommissionReportQuery lists a tenant's ledger rows created in [From, To).
//
// Example:
//
//	query, err := NewGetCommissionReportQuery(tenantID, monthStart, monthStart.AddDate(0, 1, 0))
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
type GetCommissionReportQuery struct {
	tenantID kernel.UUID
	from     time.Time
	to       time.Time

	guard guard.ConstructorGuard
}

func NewGetCommissionReportQuery(tenantID kernel.UUID, from, to time.Time) (GetCommissionReportQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetCommissionReportQuery{}, err
	}
	if err := validateRange(from, to); err != nil {
		return GetCommissionReportQuery{}, err
	}

	return GetCommissionReportQuery{
		tenantID: tenantID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetCommissionReportQuery) TenantID() kernel.UUID { return q.tenantID }
func (q GetCommissionReportQuery) From() time.Time       { return q.from }
func (q GetCommissionReportQuery) To() time.Time         { return q.to }

func (q GetCommissionReportQuery) Validate() error {
	return q.guard.Validate(ErrGetCommissionReportQueryIsNotConstructed)
}

// CommissionReportLine is one ledger row joined with its order number.
type CommissionReportLine struct {
	ID                 kernel.UUID
	SourceOrderID      kernel.UUID
	OrderNumber        string
	BranchID           *kernel.UUID
	OrderTotalSnapshot decimal.Decimal
	CommissionAmount   decimal.Decimal
	Status             string
	Kind               string
	CreatedAt          time.Time
}

// CommissionTotals sums a group of report lines.
type CommissionTotals struct {
	Entries    int
	OrderTotal decimal.Decimal
	Commission decimal.Decimal
}

func (t CommissionTotals) add(line CommissionReportLine) CommissionTotals {
	return CommissionTotals{
		Entries:    t.Entries + 1,
		OrderTotal: t.OrderTotal.Add(line.OrderTotalSnapshot),
		Commission: t.Commission.Add(line.CommissionAmount),
	}
}

type GetCommissionReportQueryResponse struct {
	Lines    []CommissionReportLine
	ByStatus map[string]CommissionTotals
	Total    CommissionTotals
}

func validateRange(from, to time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return errs.NewValueIsRequiredError("to")
	}
	if !from.Before(to) {
		return errs.NewValueIsInvalidErrorWithCause("dateRange", fmt.Errorf("%s is not before %s", from, to))
	}
	return nil
}
