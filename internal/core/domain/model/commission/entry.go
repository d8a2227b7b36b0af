package commission

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/core/domain/model/kernel"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// EntryStatus is the billing state of a ledger row.
type EntryStatus string

const (
	Pending    EntryStatus = "PENDING"
	Billed     EntryStatus = "BILLED"
	Paid       EntryStatus = "PAID"
	Adjustment EntryStatus = "ADJUSTMENT"
)

// EntryKind tags the row's role for an order.
type EntryKind string

const (
	KindOriginal   EntryKind = "original"
	KindAdjustment EntryKind = "adjustment"
)

// Entry is one immutable row of the commission ledger. Corrections are new
// rows, never edits: the original row of an order keeps the total captured at
// first confirmation forever.
type Entry struct {
	id                 kernel.UUID
	tenantID           kernel.UUID
	branchID           *kernel.UUID
	sourceOrderID      kernel.UUID
	orderTotalSnapshot decimal.Decimal
	commissionAmount   decimal.Decimal
	status             EntryStatus
	kind               EntryKind
	meta               map[string]string
	createdAt          time.Time
}

// NewOriginalEntry records the first charge of an order at its current total.
func NewOriginalEntry(
	tenantID kernel.UUID,
	branchID *kernel.UUID,
	orderID kernel.UUID,
	total decimal.Decimal,
	contract *Contract,
	now time.Time,
) (*Entry, error) {
	return newEntry(tenantID, branchID, orderID, total, contract.CommissionFor(total), Pending, KindOriginal,
		map[string]string{
			"contractId":   contract.ID().String(),
			"contractType": string(contract.Type()),
			"rate":         contract.RateValue().String(),
		}, now)
}

// NewAdjustmentEntry records an upsell: only the delta between the billed
// total and the new total is charged.
func NewAdjustmentEntry(
	original *Entry,
	billedTotal decimal.Decimal,
	newTotal decimal.Decimal,
	contract *Contract,
	now time.Time,
) (*Entry, error) {
	delta := newTotal.Sub(billedTotal)
	if !delta.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("adjustment", fmt.Errorf("%s is not an increase over %s", newTotal, billedTotal))
	}

	return newEntry(original.tenantID, original.BranchID(), original.sourceOrderID, delta,
		contract.CommissionForIncrease(delta), Adjustment, KindAdjustment,
		map[string]string{
			"originalEntryId": original.id.String(),
			"previousTotal":   billedTotal.String(),
			"newTotal":        newTotal.String(),
			"contractType":    string(contract.Type()),
			"rate":            contract.RateValue().String(),
		}, now)
}

func newEntry(
	tenantID kernel.UUID,
	branchID *kernel.UUID,
	orderID kernel.UUID,
	snapshot decimal.Decimal,
	amount decimal.Decimal,
	status EntryStatus,
	kind EntryKind,
	meta map[string]string,
	now time.Time,
) (*Entry, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	meta["kind"] = string(kind)

	return &Entry{
		id:                 kernel.NewUUID(),
		tenantID:           tenantID,
		branchID:           branchID,
		sourceOrderID:      orderID,
		orderTotalSnapshot: snapshot,
		commissionAmount:   amount,
		status:             status,
		kind:               kind,
		meta:               meta,
		createdAt:          now,
	}, nil
}

// EntrySnapshot is the persisted shape of an Entry.
type EntrySnapshot struct {
	ID                 kernel.UUID
	TenantID           kernel.UUID
	BranchID           *kernel.UUID
	SourceOrderID      kernel.UUID
	OrderTotalSnapshot decimal.Decimal
	CommissionAmount   decimal.Decimal
	Status             EntryStatus
	Kind               EntryKind
	Meta               map[string]string
	CreatedAt          time.Time
}

func RestoreEntry(s EntrySnapshot) (*Entry, error) {
	if err := errors.Join(s.ID.Validate(), s.TenantID.Validate(), s.SourceOrderID.Validate()); err != nil {
		return nil, err
	}
	return &Entry{
		id:                 s.ID,
		tenantID:           s.TenantID,
		branchID:           s.BranchID,
		sourceOrderID:      s.SourceOrderID,
		orderTotalSnapshot: s.OrderTotalSnapshot,
		commissionAmount:   s.CommissionAmount,
		status:             s.Status,
		kind:               s.Kind,
		meta:               copyMeta(s.Meta),
		createdAt:          s.CreatedAt,
	}, nil
}

func (e *Entry) Snapshot() EntrySnapshot {
	return EntrySnapshot{
		ID:                 e.id,
		TenantID:           e.tenantID,
		BranchID:           e.BranchID(),
		SourceOrderID:      e.sourceOrderID,
		OrderTotalSnapshot: e.orderTotalSnapshot,
		CommissionAmount:   e.commissionAmount,
		Status:             e.status,
		Kind:               e.kind,
		Meta:               e.Meta(),
		CreatedAt:          e.createdAt,
	}
}

func (e *Entry) ID() kernel.UUID                     { return e.id }
func (e *Entry) TenantID() kernel.UUID               { return e.tenantID }
func (e *Entry) SourceOrderID() kernel.UUID          { return e.sourceOrderID }
func (e *Entry) OrderTotalSnapshot() decimal.Decimal { return e.orderTotalSnapshot }
func (e *Entry) CommissionAmount() decimal.Decimal   { return e.commissionAmount }
func (e *Entry) Status() EntryStatus                 { return e.status }
func (e *Entry) Kind() EntryKind                     { return e.kind }
func (e *Entry) CreatedAt() time.Time                { return e.createdAt }

func (e *Entry) BranchID() *kernel.UUID {
	if e.branchID == nil {
		return nil
	}
	id := *e.branchID
	return &id
}

// Meta returns a copy of the row's metadata.
func (e *Entry) Meta() map[string]string {
	return copyMeta(e.meta)
}

func copyMeta(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// Position summarizes what the ledger already charged for one order.
type Position struct {
	Original         *Entry
	BilledTotal      decimal.Decimal
	BilledCommission decimal.Decimal
	Entries          int
}

// PositionOf folds the rows of a single order. The earliest original row is
// the reference; without one the earliest row stands in. Every row adds to the
// billed total.
func PositionOf(entries []*Entry) Position {
	position := Position{BilledTotal: decimal.Zero, BilledCommission: decimal.Zero}
	var earliest *Entry
	for _, e := range entries {
		if e.kind == KindOriginal && (position.Original == nil || e.createdAt.Before(position.Original.createdAt)) {
			position.Original = e
		}
		if earliest == nil || e.createdAt.Before(earliest.createdAt) {
			earliest = e
		}
		position.BilledTotal = position.BilledTotal.Add(e.orderTotalSnapshot)
		position.BilledCommission = position.BilledCommission.Add(e.commissionAmount)
		position.Entries++
	}
	if position.Original == nil {
		position.Original = earliest
	}
	return position
}
