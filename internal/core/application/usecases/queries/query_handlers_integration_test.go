package queries_test

import (
	"context"
	"testing"
	"time"

	"folio/internal/adapters/out/postgres/commissionrepo"
	"folio/internal/adapters/out/postgres/orderrepo"
	"folio/internal/adapters/out/postgres/pgtest"
	"folio/internal/adapters/out/postgres/statsrepo"
	"folio/internal/core/application/usecases/queries"
	"folio/internal/core/domain/model/commission"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/model/stats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var confirmedAt = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	tenantID kernel.UUID
	branchID kernel.UUID
	contract *commission.Contract
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tenantID = kernel.NewUUID()
	suite.branchID = kernel.NewUUID()
	contract, err := commission.NewDefaultContract(suite.tenantID, decimal.NewFromInt(5), confirmedAt)
	suite.Require().NoError(err)
	suite.contract = contract
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueryHandlersIntegrationTestSuite) TestCommissionReport_LinesAndTotals() {
	ctx := context.Background()
	o := suite.addOrder(suite.tenantID, "F-1", 1000)
	original := suite.addOriginal(o, confirmedAt)
	suite.addAdjustment(original, 1000, 1200, confirmedAt.Add(time.Hour))

	other := suite.addOrder(kernel.NewUUID(), "F-1", 500)
	suite.addOriginal(other, confirmedAt)

	outside := suite.addOrder(suite.tenantID, "F-2", 300)
	suite.addOriginal(outside, monthEnd.Add(time.Hour))

	query, err := queries.NewGetCommissionReportQuery(suite.tenantID, monthStart, monthEnd)
	suite.Require().NoError(err)

	report, err := queries.NewGetCommissionReportQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(report.Lines, 2)
	suite.Equal(original.ID(), report.Lines[0].ID)
	suite.Equal("F-1", report.Lines[0].OrderNumber)
	suite.Equal(string(commission.Pending), report.Lines[0].Status)
	suite.True(decimal.NewFromInt(50).Equal(report.Lines[0].CommissionAmount))
	suite.Require().NotNil(report.Lines[0].BranchID)
	suite.Equal(suite.branchID, *report.Lines[0].BranchID)

	suite.Equal(string(commission.KindAdjustment), report.Lines[1].Kind)
	suite.True(decimal.NewFromInt(200).Equal(report.Lines[1].OrderTotalSnapshot))
	suite.True(decimal.NewFromInt(10).Equal(report.Lines[1].CommissionAmount))

	suite.Equal(2, report.Total.Entries)
	suite.True(decimal.NewFromInt(1200).Equal(report.Total.OrderTotal))
	suite.True(decimal.NewFromInt(60).Equal(report.Total.Commission))
	suite.Equal(1, report.ByStatus[string(commission.Pending)].Entries)
	suite.Equal(1, report.ByStatus[string(commission.Adjustment)].Entries)
}

func (suite *QueryHandlersIntegrationTestSuite) TestCommissionReport_EmptyRange() {
	query, err := queries.NewGetCommissionReportQuery(suite.tenantID, monthStart, monthEnd)
	suite.Require().NoError(err)

	report, err := queries.NewGetCommissionReportQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(report.Lines)
	suite.Empty(report.Lines)
	suite.True(report.Total.Commission.IsZero())
}

func (suite *QueryHandlersIntegrationTestSuite) TestDailySales_FiltersByBranchAndRange() {
	ctx := context.Background()
	repo := statsrepo.NewGormDailyStatsRepository(suite.database.DB)
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	otherBranch := kernel.NewUUID()

	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day, suite.tenantID, &suite.branchID), decimal.NewFromInt(100)))
	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day, suite.tenantID, &suite.branchID), decimal.NewFromInt(250)))
	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day, suite.tenantID, &otherBranch), decimal.NewFromInt(75)))
	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day, suite.tenantID, nil), decimal.NewFromInt(10)))
	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day.AddDate(0, 0, 1), suite.tenantID, &suite.branchID), decimal.NewFromInt(5)))
	suite.Require().NoError(repo.Increment(ctx, stats.NewKey(day, kernel.NewUUID(), nil), decimal.NewFromInt(999)))

	handler := queries.NewGetDailySalesQueryHandler(suite.database.DB)

	byBranch, err := queries.NewGetDailySalesQuery(suite.tenantID, &suite.branchID, day, day)
	suite.Require().NoError(err)
	result, err := handler.Handle(ctx, byBranch)
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 1)
	suite.Equal(int64(2), result.Lines[0].OrdersCount)
	suite.True(decimal.NewFromInt(350).Equal(result.Lines[0].TotalSales))
	suite.True(day.Equal(result.Lines[0].Date))

	wholeTenant, err := queries.NewGetDailySalesQuery(suite.tenantID, nil, day, day.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	result, err = handler.Handle(ctx, wholeTenant)
	suite.Require().NoError(err)
	suite.Len(result.Lines, 4)
	suite.Equal(int64(5), result.OrdersCount)
	suite.True(decimal.NewFromInt(440).Equal(result.TotalSales))

	var sawNoBranch bool
	for _, line := range result.Lines {
		if line.BranchID == nil {
			sawNoBranch = true
		}
	}
	suite.True(sawNoBranch)
}

func (suite *QueryHandlersIntegrationTestSuite) TestLedgerDrift_ReportsMismatchedOrders() {
	ctx := context.Background()
	orders := orderrepo.NewGormOrderRepository(suite.database.DB)

	balanced := suite.addOrder(suite.tenantID, "F-1", 1000)
	suite.addOriginal(balanced, confirmedAt)

	grown := suite.addOrder(suite.tenantID, "F-2", 1000)
	suite.addOriginal(grown, confirmedAt)
	suite.Require().NoError(grown.ChangeAmounts(decimal.NewFromInt(1300), decimal.Zero, confirmedAt))
	suite.Require().NoError(orders.Update(ctx, grown))

	shrunk := suite.addOrder(suite.tenantID, "F-3", 1000)
	suite.addOriginal(shrunk, confirmedAt)
	suite.Require().NoError(shrunk.ChangeAmounts(decimal.NewFromInt(800), decimal.Zero, confirmedAt))
	suite.Require().NoError(orders.Update(ctx, shrunk))

	suite.addOrder(suite.tenantID, "F-4", 400)

	query, err := queries.NewGetLedgerDriftQuery(&suite.tenantID)
	suite.Require().NoError(err)
	drifts, err := queries.NewGetLedgerDriftQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(drifts, 2)
	suite.Equal("F-2", drifts[0].OrderNumber)
	suite.True(decimal.NewFromInt(300).Equal(drifts[0].Drift))
	suite.Equal(1, drifts[0].LedgerRows)
	suite.Equal("F-3", drifts[1].OrderNumber)
	suite.True(decimal.NewFromInt(-200).Equal(drifts[1].Drift))

	otherTenant := kernel.NewUUID()
	scoped, err := queries.NewGetLedgerDriftQuery(&otherTenant)
	suite.Require().NoError(err)
	drifts, err = queries.NewGetLedgerDriftQueryHandler(suite.database.DB).Handle(ctx, scoped)
	suite.Require().NoError(err)
	suite.Empty(drifts)
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(tenantID kernel.UUID, number string, total int64) *order.Order {
	actor, err := kernel.NewActor(tenantID, &suite.branchID, kernel.NewUUID(), kernel.RoleManager)
	suite.Require().NoError(err)

	o, err := order.NewDraft(order.DraftParams{
		ID:            kernel.NewUUID(),
		Number:        number,
		Owner:         actor,
		CustomerName:  "Lucia Ramos",
		CustomerPhone: kernel.RestorePhone("+525512345678"),
		Total:         decimal.NewFromInt(total),
		Now:           confirmedAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.Confirm(confirmedAt))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB).Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) addOriginal(o *order.Order, at time.Time) *commission.Entry {
	contract := suite.contract
	if !o.TenantID().IsEqual(suite.tenantID) {
		var err error
		contract, err = commission.NewDefaultContract(o.TenantID(), decimal.NewFromInt(5), at)
		suite.Require().NoError(err)
	}

	entry, err := commission.NewOriginalEntry(o.TenantID(), o.BranchID(), o.ID(), o.Total(), contract, at)
	suite.Require().NoError(err)
	suite.Require().NoError(commissionrepo.NewGormLedgerRepository(suite.database.DB).Add(context.Background(), entry))
	return entry
}

func (suite *QueryHandlersIntegrationTestSuite) addAdjustment(original *commission.Entry, billed, total int64, at time.Time) {
	entry, err := commission.NewAdjustmentEntry(
		original, decimal.NewFromInt(billed), decimal.NewFromInt(total), suite.contract, at,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(commissionrepo.NewGormLedgerRepository(suite.database.DB).Add(context.Background(), entry))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
