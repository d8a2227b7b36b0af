// Package commission models the platform's billing contract with a tenant and
// the ledger rows charged against confirmed sales.
package commission

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultRate is the percentage applied to tenants without a contract.
var DefaultRate = decimal.NewFromInt(5)

// ContractType selects how a commission is computed.
type ContractType string

const (
	// Percentage charges RateValue percent of the order total.
	Percentage ContractType = "PERCENTAGE"
	// Fixed charges RateValue once per order, whatever the total.
	Fixed ContractType = "FIXED"
)

func (t ContractType) Validate() error {
	if t != Percentage && t != Fixed {
		return errs.NewValueIsInvalidErrorWithCause("contract type", fmt.Errorf("%q is not a valid contract type", t))
	}
	return nil
}

type BillingCycle string

const (
	Weekly   BillingCycle = "WEEKLY"
	Biweekly BillingCycle = "BIWEEKLY"
	Monthly  BillingCycle = "MONTHLY"
)

func (c BillingCycle) Validate() error {
	switch c {
	case Weekly, Biweekly, Monthly:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("billing cycle", fmt.Errorf("%q is not a valid billing cycle", c))
	}
}

// Contract is the single billing agreement of a tenant.
type Contract struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	contractType ContractType
	rateValue    decimal.Decimal
	billingCycle BillingCycle
	isActive     bool
	createdAt    time.Time
}

// NewDefaultContract is the contract created lazily for a tenant on its first
// confirmed order: an active percentage contract billed monthly.
func NewDefaultContract(tenantID kernel.UUID, rate decimal.Decimal, now time.Time) (*Contract, error) {
	return NewContract(kernel.NewUUID(), tenantID, Percentage, rate, Monthly, true, now)
}

func NewContract(
	id kernel.UUID,
	tenantID kernel.UUID,
	contractType ContractType,
	rate decimal.Decimal,
	cycle BillingCycle,
	isActive bool,
	createdAt time.Time,
) (*Contract, error) {
	var rateErr error
	switch {
	case rate.IsNegative():
		rateErr = errs.NewValueIsInvalidErrorWithCause("rate", fmt.Errorf("%s is negative", rate))
	case contractType == Percentage && rate.GreaterThan(decimal.NewFromInt(100)):
		rateErr = errs.NewValueIsOutOfRangeError("rate", rate, 0, 100)
	}

	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		contractType.Validate(),
		cycle.Validate(),
		rateErr,
	); err != nil {
		return nil, err
	}

	return &Contract{
		id:           id,
		tenantID:     tenantID,
		contractType: contractType,
		rateValue:    rate,
		billingCycle: cycle,
		isActive:     isActive,
		createdAt:    createdAt,
	}, nil
}

func (c *Contract) ID() kernel.UUID            { return c.id }
func (c *Contract) TenantID() kernel.UUID      { return c.tenantID }
func (c *Contract) Type() ContractType         { return c.contractType }
func (c *Contract) RateValue() decimal.Decimal { return c.rateValue }
func (c *Contract) BillingCycle() BillingCycle { return c.billingCycle }
func (c *Contract) IsActive() bool             { return c.isActive }
func (c *Contract) CreatedAt() time.Time       { return c.createdAt }

// CommissionFor returns the commission owed on an order total, rounded to cents.
func (c *Contract) CommissionFor(total decimal.Decimal) decimal.Decimal {
	if c.contractType == Fixed {
		return c.rateValue.Round(2)
	}
	return total.Mul(c.rateValue).Div(decimal.NewFromInt(100)).Round(2)
}

// CommissionForIncrease returns the commission owed on an upward revision of a
// total already billed. A fixed fee is charged once per order, so only
// percentage contracts bill the delta.
func (c *Contract) CommissionForIncrease(delta decimal.Decimal) decimal.Decimal {
	if c.contractType == Fixed {
		return decimal.Zero
	}
	return c.CommissionFor(delta)
}
