package commands_test

import (
	"context"
	"time"

	"folio/internal/core/domain/model/audit"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/stats"
	"folio/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockDailyStatsRepository struct{ mock.Mock }

func (m *MockDailyStatsRepository) MarkSaleRegistered(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	at time.Time,
) (bool, error) {
	args := m.Called(ctx, tenantID, orderID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockDailyStatsRepository) Increment(ctx context.Context, key stats.Key, total decimal.Decimal) error {
	args := m.Called(ctx, key, total)
	return args.Error(0)
}

func (m *MockDailyStatsRepository) Get(ctx context.Context, key stats.Key) (*stats.DailyStats, error) {
	args := m.Called(ctx, key)
	if row, ok := args.Get(0).(*stats.DailyStats); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

// auditOverride swaps the audit repository of a real unit of work.
type auditOverride struct {
	ports.UnitOfWork
	repo ports.AuditRepository
}

func (u auditOverride) AuditRepository() ports.AuditRepository { return u.repo }

type statsOverride struct {
	ports.UnitOfWork
	repo ports.DailyStatsRepository
}

func (u statsOverride) DailyStatsRepository() ports.DailyStatsRepository { return u.repo }
