// Package memory implements the unit of work and repositories in process.
//
// A Store admits one transaction at a time: Begin waits for the previous unit
// of work to finish, works on a private copy of the data and Commit publishes
// that copy. Rollback discards it, so a failed command leaves no trace.
package memory

import (
	"slices"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/model/stats"

	"github.com/google/uuid"
)

type Store struct {
	sem  chan struct{}
	data state
}

type state struct {
	orders    map[uuid.UUID]order.Snapshot
	contracts map[uuid.UUID]*commission.Contract
	ledger    []*commission.Entry
	stats     []stats.DailyStats
	sales     map[uuid.UUID]struct{}
	audit     []*audit.Entry
}

func NewStore() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		data: state{
			orders:    make(map[uuid.UUID]order.Snapshot),
			contracts: make(map[uuid.UUID]*commission.Contract),
			sales:     make(map[uuid.UUID]struct{}),
		},
	}
}

// clone copies everything mutable. Contracts and ledger rows are immutable
// once stored and are shared.
func (s state) clone() state {
	orders := make(map[uuid.UUID]order.Snapshot, len(s.orders))
	for id, snapshot := range s.orders {
		orders[id] = snapshot
	}
	contracts := make(map[uuid.UUID]*commission.Contract, len(s.contracts))
	for id, contract := range s.contracts {
		contracts[id] = contract
	}
	sales := make(map[uuid.UUID]struct{}, len(s.sales))
	for id := range s.sales {
		sales[id] = struct{}{}
	}

	return state{
		orders:    orders,
		contracts: contracts,
		ledger:    slices.Clone(s.ledger),
		stats:     slices.Clone(s.stats),
		sales:     sales,
		audit:     slices.Clone(s.audit),
	}
}

// The accessors below read committed data only.

func (s *Store) Orders() []order.Snapshot {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	out := make([]order.Snapshot, 0, len(s.data.orders))
	for _, snapshot := range s.data.orders {
		out = append(out, snapshot)
	}
	return out
}

func (s *Store) Contracts() []*commission.Contract {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	out := make([]*commission.Contract, 0, len(s.data.contracts))
	for _, contract := range s.data.contracts {
		out = append(out, contract)
	}
	return out
}

func (s *Store) LedgerEntries() []*commission.Entry {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	return slices.Clone(s.data.ledger)
}

func (s *Store) DailyStats() []stats.DailyStats {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	return slices.Clone(s.data.stats)
}

func (s *Store) AuditEntries() []*audit.Entry {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	return slices.Clone(s.data.audit)
}
