package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"folio/internal/adapters/out/memory"
	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
	"folio/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

type lifecycleUoWFactory func() ports.UnitOfWork

func (f lifecycleUoWFactory) Create() commands.LifecycleUoW { return f() }

type orderUoWFactory func() ports.UnitOfWork

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

// fixture wires every handler to one in-memory store. wrap, when set,
// decorates each unit of work the handlers open.
type fixture struct {
	store *memory.Store
	wrap  func(ports.UnitOfWork) ports.UnitOfWork

	createDraft      commands.CreateDraftCommandHandler
	confirmOrder     commands.ConfirmOrderCommandHandler
	transitionStatus commands.TransitionStatusCommandHandler
	updateTotal      commands.UpdateOrderTotalCommandHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := kernel.ClockFunc(func() time.Time { return now })
	calendar, err := kernel.NewBusinessCalendar(clock, "America/Mexico_City")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{store: memory.NewStore()}
	factory := memory.NewUnitOfWorkFactory(f.store)
	create := func() ports.UnitOfWork {
		uow := factory.Create()
		if f.wrap != nil {
			return f.wrap(uow)
		}
		return uow
	}

	trail := services.NewAuditTrail(clock)
	ledger := services.NewLedgerEngine(services.NewContractResolver(decimal.NewFromInt(5), clock), trail, clock, logger)
	lifecycle := commands.NewOrderLifecycle(trail, ledger, services.NewSalesAggregator(calendar, logger), clock, logger)

	f.createDraft = commands.NewCreateDraftCommandHandler(orderUoWFactory(create), trail, clock, logger)
	f.confirmOrder = commands.NewConfirmOrderCommandHandler(lifecycleUoWFactory(create), lifecycle)
	f.transitionStatus = commands.NewTransitionStatusCommandHandler(lifecycleUoWFactory(create), lifecycle)
	f.updateTotal = commands.NewUpdateOrderTotalCommandHandler(orderUoWFactory(create), trail, clock, logger)
	return f
}

func newActor(t *testing.T, tenantID kernel.UUID) kernel.Actor {
	t.Helper()

	branchID := kernel.NewUUID()
	actor, err := kernel.NewActor(tenantID, &branchID, kernel.NewUUID(), kernel.RoleEmployee)
	require.NoError(t, err)
	return actor
}

func (f *fixture) draft(t *testing.T, actor kernel.Actor, total int64) *order.Order {
	t.Helper()

	cmd, err := commands.NewCreateDraftCommand(actor, commands.DraftInput{
		CustomerName:  "Lucia Perez",
		CustomerPhone: "55 1234 5678",
		Total:         decimal.NewFromInt(total),
	}, "MX")
	require.NoError(t, err)

	o, err := f.createDraft.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (f *fixture) confirm(t *testing.T, actor kernel.Actor, orderID kernel.UUID) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewConfirmOrderCommand(orderID, actor)
	require.NoError(t, err)
	return f.confirmOrder.Handle(t.Context(), cmd)
}

func (f *fixture) transition(
	t *testing.T,
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewTransitionStatusCommand(orderID, target, "", actor)
	require.NoError(t, err)
	return f.transitionStatus.Handle(t.Context(), cmd)
}

func (f *fixture) changeTotal(t *testing.T, actor kernel.Actor, orderID kernel.UUID, total int64) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewUpdateOrderTotalCommand(orderID, decimal.NewFromInt(total), nil, actor)
	require.NoError(t, err)
	return f.updateTotal.Handle(t.Context(), cmd)
}

func (f *fixture) storedStatus(t *testing.T, orderID kernel.UUID) order.Status {
	t.Helper()

	for _, s := range f.store.Orders() {
		if s.ID.IsEqual(orderID) {
			return s.Status
		}
	}
	t.Fatalf("order %s not stored", orderID)
	return order.Unknown
}
