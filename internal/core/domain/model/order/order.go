package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraft or RestoreOrder")
	ErrOrderIsCancelled      = errs.NewValueIsInvalidErrorWithCause("order", errors.New("cancelled orders cannot be edited"))
)

// Order is a folio: the aggregate root of the lifecycle.
//
// Invariants:
//   - status only moves along the edges of the transition table
//   - tenantID never changes
//   - total is positive and advance lies in [0, total]
type Order struct {
	id                kernel.UUID
	number            string
	tenantID          kernel.UUID
	branchID          *kernel.UUID
	responsibleUserID kernel.UUID

	customerName  string
	customerPhone kernel.Phone
	description   string
	deliveryDate  *time.Time

	total   decimal.Decimal
	advance decimal.Decimal

	status       Status
	confirmedAt  *time.Time
	cancelledAt  *time.Time
	cancelReason string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// DraftParams carries the commercial and customer data of a new order.
// Ownership comes from the trusted actor, never from client data.
type DraftParams struct {
	ID            kernel.UUID
	Number        string
	Owner         kernel.Actor
	CustomerName  string
	CustomerPhone kernel.Phone
	Description   string
	DeliveryDate  *time.Time
	Total         decimal.Decimal
	Advance       decimal.Decimal
	Now           time.Time
}

// NewDraft creates an order in DRAFT status owned by params.Owner.
// A missing number is generated from the creation date and the order id.
func NewDraft(params DraftParams) (*Order, error) {
	o := &Order{
		status:        Draft,
		createdAt:     params.Now,
		updatedAt:     params.Now,
		description:   strings.TrimSpace(params.Description),
		deliveryDate:  params.DeliveryDate,
		isConstructed: true,
	}

	var ownerErr error
	if ownerErr = params.Owner.Validate(); ownerErr == nil {
		o.tenantID = params.Owner.TenantID()
		o.branchID = params.Owner.BranchID()
		o.responsibleUserID = params.Owner.UserID()
	}

	if err := errors.Join(
		o.setID(params.ID),
		ownerErr,
		o.setCustomer(params.CustomerName, params.CustomerPhone),
		o.setAmounts(params.Total, params.Advance),
	); err != nil {
		return nil, err
	}

	o.number = strings.TrimSpace(params.Number)
	if o.number == "" {
		o.number = GenerateNumber(params.Now, o.id)
	}

	return o, nil
}

// GenerateNumber builds a human-readable order number such as F-261015-3FA2C1.
func GenerateNumber(now time.Time, id kernel.UUID) string {
	raw := id.Bytes()
	return fmt.Sprintf("F-%s-%X", now.Format("060102"), raw[:3])
}

// Snapshot is the persisted shape of an Order.
type Snapshot struct {
	ID                kernel.UUID
	Number            string
	TenantID          kernel.UUID
	BranchID          *kernel.UUID
	ResponsibleUserID kernel.UUID
	CustomerName      string
	CustomerPhone     kernel.Phone
	Description       string
	DeliveryDate      *time.Time
	Total             decimal.Decimal
	Advance           decimal.Decimal
	Status            Status
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.TenantID.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                s.ID,
		number:            s.Number,
		tenantID:          s.TenantID,
		branchID:          s.BranchID,
		responsibleUserID: s.ResponsibleUserID,
		customerName:      s.CustomerName,
		customerPhone:     s.CustomerPhone,
		description:       s.Description,
		deliveryDate:      s.DeliveryDate,
		total:             s.Total,
		advance:           s.Advance,
		status:            s.Status,
		confirmedAt:       s.ConfirmedAt,
		cancelledAt:       s.CancelledAt,
		cancelReason:      s.CancelReason,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		isConstructed:     true,
	}, nil
}

// Snapshot exports the current state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		Number:            o.number,
		TenantID:          o.tenantID,
		BranchID:          o.BranchID(),
		ResponsibleUserID: o.responsibleUserID,
		CustomerName:      o.customerName,
		CustomerPhone:     o.customerPhone,
		Description:       o.description,
		DeliveryDate:      o.deliveryDate,
		Total:             o.total,
		Advance:           o.advance,
		Status:            o.status,
		ConfirmedAt:       o.confirmedAt,
		CancelledAt:       o.cancelledAt,
		CancelReason:      o.cancelReason,
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) Number() string                 { return o.number }
func (o *Order) TenantID() kernel.UUID          { return o.tenantID }
func (o *Order) ResponsibleUserID() kernel.UUID { return o.responsibleUserID }
func (o *Order) CustomerName() string           { return o.customerName }
func (o *Order) CustomerPhone() kernel.Phone    { return o.customerPhone }
func (o *Order) Description() string            { return o.description }
func (o *Order) DeliveryDate() *time.Time       { return o.deliveryDate }
func (o *Order) Total() decimal.Decimal         { return o.total }
func (o *Order) Advance() decimal.Decimal       { return o.advance }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) LegacyStatus() LegacyStatus     { return o.status.Legacy() }
func (o *Order) ConfirmedAt() *time.Time        { return o.confirmedAt }
func (o *Order) CancelledAt() *time.Time        { return o.cancelledAt }
func (o *Order) CancelReason() string           { return o.cancelReason }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }

// BranchID returns a copy of the branch, nil for tenant-level orders.
func (o *Order) BranchID() *kernel.UUID {
	if o.branchID == nil {
		return nil
	}
	id := *o.branchID
	return &id
}

// Balance is what the customer still owes.
func (o *Order) Balance() decimal.Decimal {
	return o.total.Sub(o.advance)
}

// Confirm moves a DRAFT order to CONFIRMED.
func (o *Order) Confirm(now time.Time) error {
	return o.TransitionTo(Confirmed, now, "")
}

// TransitionTo moves the order to target if the edge is allowed. reason is
// only recorded for cancellations. On failure the order is left untouched.
func (o *Order) TransitionTo(target Status, now time.Time, reason string) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	switch next {
	case Confirmed:
		if o.confirmedAt == nil {
			confirmedAt := now
			o.confirmedAt = &confirmedAt
		}
	case Cancelled:
		cancelledAt := now
		o.cancelledAt = &cancelledAt
		o.cancelReason = strings.TrimSpace(reason)
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// ChangeAmounts edits the commercial amounts. Edits are accepted in every
// status except CANCELLED, including after confirmation.
func (o *Order) ChangeAmounts(total, advance decimal.Decimal, now time.Time) error {
	if o.status == Cancelled {
		return ErrOrderIsCancelled
	}
	if err := o.setAmounts(total, advance); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(name string, phone kernel.Phone) error {
	name = strings.TrimSpace(name)

	var nameErr, phoneErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("customerName")
	}
	if phone.IsZero() {
		phoneErr = errs.NewValueIsRequiredError("customerPhone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return err
	}

	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setAmounts(total, advance decimal.Decimal) error {
	if !total.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%s is not greater than 0", total))
	}
	if advance.IsNegative() || advance.GreaterThan(total) {
		return errs.NewValueIsOutOfRangeError("advance", advance, decimal.Zero, total)
	}
	o.total = total
	o.advance = advance
	return nil
}
