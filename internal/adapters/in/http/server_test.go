package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "folio/internal/adapters/in/http"
	"folio/internal/adapters/out/memory"
	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/application/usecases/queries"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/model/order"
	"folio/internal/core/domain/services"
	"folio/internal/core/ports"
	"folio/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

type lifecycleUoWFactory func() ports.UnitOfWork

func (f lifecycleUoWFactory) Create() commands.LifecycleUoW { return f() }

type orderUoWFactory func() ports.UnitOfWork

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type MockCommissionReporter struct{ mock.Mock }

func (m *MockCommissionReporter) Handle(
	ctx context.Context,
	query queries.GetCommissionReportQuery,
) (queries.GetCommissionReportQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCommissionReportQueryResponse), args.Error(1)
}

type MockDailySalesReader struct{ mock.Mock }

func (m *MockDailySalesReader) Handle(
	ctx context.Context,
	query queries.GetDailySalesQuery,
) (queries.GetDailySalesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDailySalesQueryResponse), args.Error(1)
}

type MockTotalUpdater struct{ mock.Mock }

func (m *MockTotalUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderTotalCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type testServer struct {
	echo     *echo.Echo
	handlers httpin.Handlers
	reporter *MockCommissionReporter
	sales    *MockDailySalesReader
	calendar kernel.BusinessCalendar
	tenantID kernel.UUID
	branchID kernel.UUID
	userID   kernel.UUID
}

func newTestServer(t *testing.T, override func(*httpin.Handlers)) *testServer {
	t.Helper()

	clock := kernel.ClockFunc(func() time.Time { return now })
	calendar, err := kernel.NewBusinessCalendar(clock, "America/Mexico_City")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	trail := services.NewAuditTrail(clock)
	ledger := services.NewLedgerEngine(services.NewContractResolver(decimal.NewFromInt(5), clock), trail, clock, logger)
	lifecycle := commands.NewOrderLifecycle(trail, ledger, services.NewSalesAggregator(calendar, logger), clock, logger)

	ts := &testServer{
		reporter: new(MockCommissionReporter),
		sales:    new(MockDailySalesReader),
		calendar: calendar,
		tenantID: kernel.NewUUID(),
		branchID: kernel.NewUUID(),
		userID:   kernel.NewUUID(),
	}
	ts.handlers = httpin.Handlers{
		CreateDraft:      commands.NewCreateDraftCommandHandler(orderUoWFactory(factory.Create), trail, clock, logger),
		ConfirmOrder:     commands.NewConfirmOrderCommandHandler(lifecycleUoWFactory(factory.Create), lifecycle),
		TransitionStatus: commands.NewTransitionStatusCommandHandler(lifecycleUoWFactory(factory.Create), lifecycle),
		UpdateTotal:      commands.NewUpdateOrderTotalCommandHandler(orderUoWFactory(factory.Create), trail, clock, logger),
		CommissionReport: ts.reporter,
		DailySales:       ts.sales,
	}
	if override != nil {
		override(&ts.handlers)
	}

	ts.echo = echo.New()
	httpin.NewServer(ts.handlers, calendar, "MX").Register(ts.echo)
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(httpin.HeaderTenantID, ts.tenantID.String())
	req.Header.Set(httpin.HeaderBranchID, ts.branchID.String())
	req.Header.Set(httpin.HeaderUserID, ts.userID.String())
	req.Header.Set(httpin.HeaderRole, "manager")

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) createOrder(t *testing.T, total int) httpin.OrderResponse {
	t.Helper()

	rec := ts.do(http.MethodPost, "/api/v1/orders",
		`{"customerName":"Lucia Perez","customerPhone":"55 1234 5678","total":`+decimal.NewFromInt(int64(total)).String()+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.OrderResponse](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	ts.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestRequireActor_MissingHeaders(t *testing.T) {
	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	ts.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireActor_BranchlessManagerRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set(httpin.HeaderTenantID, ts.tenantID.String())
	req.Header.Set(httpin.HeaderUserID, ts.userID.String())
	req.Header.Set(httpin.HeaderRole, "MANAGER")
	rec := httptest.NewRecorder()

	ts.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_OwnedByActor(t *testing.T) {
	ts := newTestServer(t, nil)

	created := ts.createOrder(t, 1000)

	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, "active", created.LegacyStatus)
	assert.Equal(t, ts.tenantID.String(), created.TenantID)
	require.NotNil(t, created.BranchID)
	assert.Equal(t, ts.branchID.String(), *created.BranchID)
	assert.Equal(t, ts.userID.String(), created.ResponsibleUserID)
	assert.Equal(t, "+525512345678", created.CustomerPhone)
	assert.True(t, decimal.NewFromInt(1000).Equal(created.Total))
}

func TestCreateOrder_ValidationError(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders", `{"customerPhone":"55 1234 5678","total":10}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decode[httpin.ErrorResponse](t, rec).Kind)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders", `{"total":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderLifecycleScenario(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 1000)
	base := "/api/v1/orders/" + created.ID

	rec := ts.do(http.MethodPost, base+"/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CONFIRMED", decode[httpin.OrderResponse](t, rec).Status)

	rec = ts.do(http.MethodPost, base+"/status", `{"status":"DRAFT"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decode[httpin.ErrorResponse](t, rec).Kind)

	rec = ts.do(http.MethodPost, base+"/status", `{"status":"IN_PRODUCTION"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "production", decode[httpin.OrderResponse](t, rec).LegacyStatus)

	rec = ts.do(http.MethodPost, base+"/status", `{"status":"DELIVERED"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 100)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/status", `{"status":"SHIPPED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionStatus_CancelKeepsReason(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 100)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/status",
		`{"status":"CANCELLED","reason":" customer left "}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[httpin.OrderResponse](t, rec)
	assert.Equal(t, "cancelled", cancelled.LegacyStatus)
	assert.Equal(t, "customer left", cancelled.CancelReason)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestConfirmOrder_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/confirm", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[httpin.ErrorResponse](t, rec).Kind)
}

func TestConfirmOrder_OtherTenantIsNotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 100)

	ts.tenantID = kernel.NewUUID()
	rec := ts.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/confirm", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmOrder_InvalidID(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders/not-a-uuid/confirm", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderTotal(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 100)

	rec := ts.do(http.MethodPatch, "/api/v1/orders/"+created.ID+"/total", `{"total":"150.50","advance":50}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[httpin.OrderResponse](t, rec)
	assert.True(t, decimal.RequireFromString("150.50").Equal(updated.Total))
	assert.True(t, decimal.RequireFromString("100.50").Equal(updated.Balance))
}

func TestUpdateOrderTotal_MissingTotal(t *testing.T) {
	ts := newTestServer(t, nil)
	created := ts.createOrder(t, 100)

	rec := ts.do(http.MethodPatch, "/api/v1/orders/"+created.ID+"/total", `{"advance":10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderTotal_LockContentionIsRetryable(t *testing.T) {
	updater := new(MockTotalUpdater)
	updater.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewRetryableTransactionAbortError("lock order", errors.New("lock timeout")))
	ts := newTestServer(t, func(h *httpin.Handlers) { h.UpdateTotal = updater })

	rec := ts.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/total", `{"total":10}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "retryable", decode[httpin.ErrorResponse](t, rec).Kind)
	updater.AssertExpectations(t)
}

func TestUpdateOrderTotal_UnknownFailureHidesCause(t *testing.T) {
	updater := new(MockTotalUpdater)
	updater.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewTransactionAbortError("update order total", errors.New("disk full")))
	ts := newTestServer(t, func(h *httpin.Handlers) { h.UpdateTotal = updater })

	rec := ts.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/total", `{"total":10}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestGetCommissionReport_InclusiveBusinessDays(t *testing.T) {
	ts := newTestServer(t, nil)
	lineID := kernel.NewUUID()
	ts.reporter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetCommissionReportQuery) bool {
		return q.TenantID().IsEqual(ts.tenantID) &&
			q.From().Equal(time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)) &&
			q.To().Equal(time.Date(2026, 11, 1, 6, 0, 0, 0, time.UTC))
	})).Return(queries.GetCommissionReportQueryResponse{
		Lines: []queries.CommissionReportLine{{
			ID:                 lineID,
			SourceOrderID:      kernel.NewUUID(),
			OrderNumber:        "F-1",
			OrderTotalSnapshot: decimal.NewFromInt(1000),
			CommissionAmount:   decimal.NewFromInt(50),
			Status:             "PENDING",
			Kind:               "original",
			CreatedAt:          now,
		}},
		ByStatus: map[string]queries.CommissionTotals{
			"PENDING": {Entries: 1, OrderTotal: decimal.NewFromInt(1000), Commission: decimal.NewFromInt(50)},
		},
		Total: queries.CommissionTotals{Entries: 1, OrderTotal: decimal.NewFromInt(1000), Commission: decimal.NewFromInt(50)},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/commissions?from=2026-10-01&to=2026-10-31", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[httpin.CommissionReportResponse](t, rec)
	assert.Equal(t, "2026-10-01", report.From)
	assert.Equal(t, "2026-10-31", report.To)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, lineID.String(), report.Entries[0].ID)
	assert.True(t, decimal.NewFromInt(50).Equal(report.Total.Commission))
	assert.Equal(t, 1, report.ByStatus["PENDING"].Entries)
	ts.reporter.AssertExpectations(t)
}

func TestGetCommissionReport_DefaultsToCurrentMonth(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.reporter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetCommissionReportQuery) bool {
		return q.From().Equal(time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)) &&
			q.To().Equal(time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC))
	})).Return(queries.GetCommissionReportQueryResponse{}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/commissions", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.reporter.AssertExpectations(t)
}

func TestGetCommissionReport_BadDate(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/commissions?from=October", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.reporter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetDailySales_WithBranch(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.sales.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDailySalesQuery) bool {
		return q.BranchID() != nil && q.BranchID().IsEqual(ts.branchID) &&
			q.From().Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	})).Return(queries.GetDailySalesQueryResponse{
		Lines: []queries.DailySalesLine{{
			Date:        time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			OrdersCount: 2,
			TotalSales:  decimal.NewFromInt(350),
		}},
		OrdersCount: 2,
		TotalSales:  decimal.NewFromInt(350),
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/stats/daily?from=2026-10-15&to=2026-10-15&branch="+ts.branchID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sales := decode[httpin.DailySalesResponse](t, rec)
	require.Len(t, sales.Days, 1)
	assert.Equal(t, "2026-10-15", sales.Days[0].Date)
	assert.Equal(t, int64(2), sales.OrdersCount)
	ts.sales.AssertExpectations(t)
}

func TestGetDailySales_InvalidBranch(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/stats/daily?branch=nope", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
