package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/model/stats"
	"folio/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	if _, ok := s.orders[snapshot.ID.Bytes()]; ok {
		return fmt.Errorf("order %s already exists", snapshot.ID)
	}
	for _, existing := range s.orders {
		if existing.TenantID.IsEqual(snapshot.TenantID) && existing.Number == snapshot.Number {
			return fmt.Errorf("order number %s already exists", snapshot.Number)
		}
	}

	s.orders[snapshot.ID.Bytes()] = snapshot
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	snapshot := aggregate.Snapshot()
	if _, ok := s.orders[snapshot.ID.Bytes()]; !ok {
		return errs.NewObjectNotFoundError("order", snapshot.ID.String())
	}
	s.orders[snapshot.ID.Bytes()] = snapshot
	return nil
}

// GetForUpdate needs no row lock: the whole store belongs to this unit of work.
func (r *orderRepository) GetForUpdate(_ context.Context, id kernel.UUID, tenantID kernel.UUID) (*order.Order, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	snapshot, ok := s.orders[id.Bytes()]
	if !ok || !snapshot.TenantID.IsEqual(tenantID) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

type contractRepository struct {
	uow *UnitOfWork
}

func (r *contractRepository) GetByTenant(_ context.Context, tenantID kernel.UUID) (*commission.Contract, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	contract, ok := s.contracts[tenantID.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("commission contract", tenantID.String())
	}
	return contract, nil
}

func (r *contractRepository) AddIfAbsent(_ context.Context, contract *commission.Contract) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.contracts[contract.TenantID().Bytes()]; !ok {
		s.contracts[contract.TenantID().Bytes()] = contract
	}
	return nil
}

// PutContract stores or replaces a tenant's contract outside any unit of work.
func (s *Store) PutContract(contract *commission.Contract) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	s.data.contracts[contract.TenantID().Bytes()] = contract
}

type ledgerRepository struct {
	uow *UnitOfWork
}

func (r *ledgerRepository) Add(_ context.Context, entry *commission.Entry) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}
	s.ledger = append(s.ledger, entry)
	return nil
}

func (r *ledgerRepository) ListByOrder(
	_ context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
) ([]*commission.Entry, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	entries := make([]*commission.Entry, 0)
	for _, e := range s.ledger {
		if e.TenantID().IsEqual(tenantID) && e.SourceOrderID().IsEqual(orderID) {
			entries = append(entries, e)
		}
	}
	slices.SortStableFunc(entries, func(a, b *commission.Entry) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return entries, nil
}

type statsRepository struct {
	uow *UnitOfWork
}

func (r *statsRepository) MarkSaleRegistered(
	_ context.Context,
	_ kernel.UUID,
	orderID kernel.UUID,
	_ time.Time,
) (bool, error) {
	s, err := r.uow.current()
	if err != nil {
		return false, err
	}

	if _, ok := s.sales[orderID.Bytes()]; ok {
		return false, nil
	}
	s.sales[orderID.Bytes()] = struct{}{}
	return true, nil
}

func (r *statsRepository) Increment(_ context.Context, key stats.Key, total decimal.Decimal) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	for i := range s.stats {
		if s.stats[i].Key.Matches(key) {
			s.stats[i].RegisterSale(total)
			return nil
		}
	}

	row := stats.NewDailyStats(key)
	row.RegisterSale(total)
	s.stats = append(s.stats, *row)
	return nil
}

func (r *statsRepository) Get(_ context.Context, key stats.Key) (*stats.DailyStats, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	for _, row := range s.stats {
		if row.Key.Matches(key) {
			return &row, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("daily stats", key.Date.Format(time.DateOnly))
}

type auditRepository struct {
	uow *UnitOfWork
}

func (r *auditRepository) Append(_ context.Context, entry *audit.Entry) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}
	s.audit = append(s.audit, entry)
	return nil
}
