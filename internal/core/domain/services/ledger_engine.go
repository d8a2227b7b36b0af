package services

import (
	"context"
	"log/slog"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/ports"
)

// LedgerOutcome tells what Process did.
type LedgerOutcome int

const (
	// LedgerSkipped means the tenant's contract is inactive.
	LedgerSkipped LedgerOutcome = iota
	LedgerRecorded
	LedgerAdjusted
	LedgerUnchanged
	// LedgerAnomaly means the total dropped below what was billed and an
	// alert was written instead of touching the ledger.
	LedgerAnomaly
)

var ledgerOutcomeNames = map[LedgerOutcome]string{
	LedgerSkipped:   "skipped",
	LedgerRecorded:  "recorded",
	LedgerAdjusted:  "adjusted",
	LedgerUnchanged: "unchanged",
	LedgerAnomaly:   "anomaly",
}

func (o LedgerOutcome) String() string {
	return ledgerOutcomeNames[o]
}

type LedgerTx interface {
	ContractTx
	AuditTx
	LedgerRepository() ports.LedgerRepository
}

// LedgerEngine charges commission on confirmed orders. Processing the same
// order repeatedly never bills the same amount twice: the ledger is compared
// against everything already billed for the order.
//
//   - no rows: an original PENDING row for the whole total
//   - total equals billed: nothing
//   - total above billed: an ADJUSTMENT row for the difference
//   - total below billed: a downsell alert in the audit log, ledger untouched
type LedgerEngine struct {
	resolver ContractResolver
	trail    AuditTrail
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewLedgerEngine(resolver ContractResolver, trail AuditTrail, clock kernel.Clock, logger *slog.Logger) LedgerEngine {
	return LedgerEngine{
		resolver: resolver,
		trail:    trail,
		clock:    clock,
		logger:   logger.With("component", "ledger_engine"),
	}
}

func (e LedgerEngine) Process(
	ctx context.Context,
	tx LedgerTx,
	o *order.Order,
	actorID *kernel.UUID,
) (LedgerOutcome, error) {
	contract, err := e.resolver.Resolve(ctx, tx, o.TenantID())
	if err != nil {
		return LedgerSkipped, err
	}
	if !contract.IsActive() {
		return LedgerSkipped, nil
	}

	ledger := tx.LedgerRepository()
	entries, err := ledger.ListByOrder(ctx, o.TenantID(), o.ID())
	if err != nil {
		return LedgerSkipped, err
	}

	now := e.clock.Now()
	position := commission.PositionOf(entries)

	if position.Entries == 0 {
		entry, err := commission.NewOriginalEntry(o.TenantID(), o.BranchID(), o.ID(), o.Total(), contract, now)
		if err != nil {
			return LedgerSkipped, err
		}
		if err = ledger.Add(ctx, entry); err != nil {
			return LedgerSkipped, err
		}
		e.logger.InfoContext(ctx, "Commission recorded",
			"order_id", o.ID().String(), "total", o.Total().String(), "commission", entry.CommissionAmount().String())
		return LedgerRecorded, nil
	}

	switch o.Total().Cmp(position.BilledTotal) {
	case 0:
		return LedgerUnchanged, nil
	case 1:
		entry, err := commission.NewAdjustmentEntry(position.Original, position.BilledTotal, o.Total(), contract, now)
		if err != nil {
			return LedgerSkipped, err
		}
		if err = ledger.Add(ctx, entry); err != nil {
			return LedgerSkipped, err
		}
		e.logger.InfoContext(ctx, "Commission adjustment recorded",
			"order_id", o.ID().String(), "delta", entry.OrderTotalSnapshot().String(),
			"commission", entry.CommissionAmount().String())
		return LedgerAdjusted, nil
	default:
		err = e.trail.Write(ctx, tx, AuditRecord{
			TenantID: o.TenantID(),
			Action:   audit.CommissionDownsell,
			Entity:   audit.EntityCommissionLedger,
			EntityID: position.Original.ID().String(),
			Meta: map[string]any{
				"orderId":       o.ID().String(),
				"ledgerEntryId": position.Original.ID().String(),
				"previousTotal": position.BilledTotal.String(),
				"currentTotal":  o.Total().String(),
			},
			ActorID: actorID,
		})
		if err != nil {
			return LedgerSkipped, err
		}
		e.logger.WarnContext(ctx, "Order total dropped below billed total",
			"order_id", o.ID().String(), "billed_total", position.BilledTotal.String(), "total", o.Total().String())
		return LedgerAnomaly, nil
	}
}
