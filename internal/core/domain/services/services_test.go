package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"folio/internal/adapters/out/memory"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
	"folio/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return now })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLedgerEngine() services.LedgerEngine {
	clock := fixedClock()
	return services.NewLedgerEngine(
		services.NewContractResolver(decimal.NewFromInt(5), clock),
		services.NewAuditTrail(clock),
		clock,
		discardLogger(),
	)
}

func newConfirmedOrder(t *testing.T, tenantID kernel.UUID, branchID *kernel.UUID, total int64) *order.Order {
	t.Helper()

	role := kernel.RoleManager
	if branchID == nil {
		role = kernel.RoleAdmin
	}
	actor, err := kernel.NewActor(tenantID, branchID, kernel.NewUUID(), role)
	require.NoError(t, err)

	o, err := order.NewDraft(order.DraftParams{
		ID:            kernel.NewUUID(),
		Owner:         actor,
		CustomerName:  "Lucia",
		CustomerPhone: kernel.RestorePhone("+525512345678"),
		Total:         decimal.NewFromInt(total),
		Now:           now,
	})
	require.NoError(t, err)
	require.NoError(t, o.Confirm(now))
	return o
}

func changeTotal(t *testing.T, o *order.Order, total int64) {
	t.Helper()
	require.NoError(t, o.ChangeAmounts(decimal.NewFromInt(total), decimal.Zero, now))
}

// inTx runs fn in its own committed unit of work.
func inTx(t *testing.T, store *memory.Store, fn func(ctx context.Context, uow ports.UnitOfWork)) {
	t.Helper()

	ctx := t.Context()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(ctx))
	fn(ctx, uow)
	require.NoError(t, uow.Commit(ctx))
}
