package memory

import (
	"context"
	"errors"

	"folio/internal/core/ports"
	"folio/internal/pkg/errs"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

type UnitOfWork struct {
	store   *Store
	working *state
}

// Begin blocks until no other unit of work holds the store. A context that
// ends while waiting aborts with a retryable error, like a lock timeout would.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.working != nil {
		return nil
	}

	select {
	case uow.store.sem <- struct{}{}:
	case <-ctx.Done():
		return errs.NewRetryableTransactionAbortError("begin", ctx.Err())
	}

	working := uow.store.data.clone()
	uow.working = &working
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.working == nil {
		return ErrNoActiveTransaction
	}

	uow.store.data = *uow.working
	uow.release()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.working == nil {
		return ErrNoActiveTransaction
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) release() {
	uow.working = nil
	<-uow.store.sem
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) ContractRepository() ports.ContractRepository {
	return &contractRepository{uow: uow}
}

func (uow *UnitOfWork) LedgerRepository() ports.LedgerRepository {
	return &ledgerRepository{uow: uow}
}

func (uow *UnitOfWork) DailyStatsRepository() ports.DailyStatsRepository {
	return &statsRepository{uow: uow}
}

func (uow *UnitOfWork) AuditRepository() ports.AuditRepository {
	return &auditRepository{uow: uow}
}

func (uow *UnitOfWork) current() (*state, error) {
	if uow.working == nil {
		return nil, ErrNoActiveTransaction
	}
	return uow.working, nil
}
