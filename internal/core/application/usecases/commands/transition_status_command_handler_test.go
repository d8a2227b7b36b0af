package commands_test

import (
	"testing"

	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionStatusCommandHandler_Scenario(t *testing.T) {
	f := newFixture(t)
	actor := newActor(t, kernel.NewUUID())
	draft := f.draft(t, actor, 1000)
	assert.Equal(t, order.Draft, draft.Status())

	_, err := f.confirm(t, actor, draft.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, f.storedStatus(t, draft.ID()))
	assert.Len(t, f.store.LedgerEntries(), 1)

	_, err = f.transition(t, actor, draft.ID(), order.Draft)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Confirmed, f.storedStatus(t, draft.ID()))

	o, err := f.transition(t, actor, draft.ID(), order.InProduction)
	require.NoError(t, err)
	assert.Equal(t, order.InProduction, o.Status())

	_, err = f.transition(t, actor, draft.ID(), order.Delivered)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.InProduction, f.storedStatus(t, draft.ID()))

	assert.Len(t, f.store.LedgerEntries(), 1)
}

func TestTransitionStatusCommandHandler_AdminCannotOverride(t *testing.T) {
	f := newFixture(t)
	tenantID := kernel.NewUUID()
	employee := newActor(t, tenantID)
	admin, err := kernel.NewActor(tenantID, nil, kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)

	draft := f.draft(t, employee, 500)

	_, err = f.transition(t, admin, draft.ID(), order.Delivered)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Draft, f.storedStatus(t, draft.ID()))
}

func TestTransitionStatusCommandHandler_ConfirmThroughTransitionCountsSale(t *testing.T) {
	f := newFixture(t)
	actor := newActor(t, kernel.NewUUID())
	draft := f.draft(t, actor, 300)

	_, err := f.transition(t, actor, draft.ID(), order.Confirmed)
	require.NoError(t, err)

	assert.Len(t, f.store.LedgerEntries(), 1)
	require.Len(t, f.store.DailyStats(), 1)
	assert.Equal(t, "300", f.store.DailyStats()[0].TotalSales.String())
}

func TestTransitionStatusCommandHandler_InProductionReconcilesUpsell(t *testing.T) {
	f := newFixture(t)
	actor := newActor(t, kernel.NewUUID())
	draft := f.draft(t, actor, 1000)
	_, err := f.confirm(t, actor, draft.ID())
	require.NoError(t, err)

	_, err = f.changeTotal(t, actor, draft.ID(), 1200)
	require.NoError(t, err)
	_, err = f.transition(t, actor, draft.ID(), order.InProduction)
	require.NoError(t, err)

	entries := f.store.LedgerEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "1000", entries[0].OrderTotalSnapshot().String())
	assert.Equal(t, "50", entries[0].CommissionAmount().String())
	assert.Equal(t, "200", entries[1].OrderTotalSnapshot().String())
	assert.Equal(t, "10", entries[1].CommissionAmount().String())

	// stats keep the total counted at confirmation
	assert.Equal(t, "1000", f.store.DailyStats()[0].TotalSales.String())
}

func TestTransitionStatusCommandHandler_InProductionFlagsDownsell(t *testing.T) {
	f := newFixture(t)
	actor := newActor(t, kernel.NewUUID())
	draft := f.draft(t, actor, 1000)
	_, err := f.confirm(t, actor, draft.ID())
	require.NoError(t, err)

	_, err = f.changeTotal(t, actor, draft.ID(), 800)
	require.NoError(t, err)
	_, err = f.transition(t, actor, draft.ID(), order.InProduction)
	require.NoError(t, err)

	entries := f.store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "1000", entries[0].OrderTotalSnapshot().String())

	alerts := 0
	for _, e := range f.store.AuditEntries() {
		if e.Action == audit.CommissionDownsell {
			alerts++
			assert.Equal(t, entries[0].ID().String(), e.EntityID)
			assert.True(t, e.ActorID.IsEqual(actor.UserID()))
		}
	}
	assert.Equal(t, 1, alerts)
}

func TestTransitionStatusCommandHandler_CancelRecordsReason(t *testing.T) {
	f := newFixture(t)
	actor := newActor(t, kernel.NewUUID())
	draft := f.draft(t, actor, 1000)

	cmd, err := commands.NewTransitionStatusCommand(draft.ID(), order.Cancelled, "duplicate", actor)
	require.NoError(t, err)
	o, err := f.transitionStatus.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, "duplicate", o.CancelReason())
	assert.Equal(t, order.LegacyCancelled, o.LegacyStatus())
	require.NotNil(t, o.CancelledAt())

	last := f.store.AuditEntries()[len(f.store.AuditEntries())-1]
	assert.Equal(t, audit.OrderStatusChanged, last.Action)
	assert.Equal(t, "duplicate", last.Meta["reason"])
	assert.Empty(t, f.store.LedgerEntries())
}
