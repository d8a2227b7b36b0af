package cmd

import (
	"log/slog"

	httpin "folio/internal/adapters/in/http"
	"folio/internal/adapters/out/postgres"
	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/application/usecases/queries"
	"folio/internal/core/domain/model/kernel"
	"folio/internal/core/domain/services"
	"folio/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	calendar   kernel.BusinessCalendar
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clock := kernel.SystemClock()
	calendar, err := kernel.NewBusinessCalendar(clock, config.BusinessTimezone)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.LockTimeout),
		clock:      clock,
		calendar:   calendar,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) auditTrail() services.AuditTrail {
	return services.NewAuditTrail(c.clock)
}

func (c *CompositionRoot) orderLifecycle() commands.OrderLifecycle {
	trail := c.auditTrail()
	ledger := services.NewLedgerEngine(
		services.NewContractResolver(c.config.DefaultCommissionRate, c.clock),
		trail,
		c.clock,
		c.logger,
	)
	aggregator := services.NewSalesAggregator(c.calendar, c.logger)
	return commands.NewOrderLifecycle(trail, ledger, aggregator, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateDraftCommandHandler() commands.CreateDraftCommandHandler {
	return commands.NewCreateDraftCommandHandler(c.orderUoWFactory(), c.auditTrail(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.lifecycleUoWFactory(), c.orderLifecycle())
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	return commands.NewTransitionStatusCommandHandler(c.lifecycleUoWFactory(), c.orderLifecycle())
}

func (c *CompositionRoot) CreateUpdateOrderTotalCommandHandler() commands.UpdateOrderTotalCommandHandler {
	return commands.NewUpdateOrderTotalCommandHandler(c.orderUoWFactory(), c.auditTrail(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetCommissionReportQueryHandler() queries.GetCommissionReportQueryHandler {
	return queries.NewGetCommissionReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDailySalesQueryHandler() queries.GetDailySalesQueryHandler {
	return queries.NewGetDailySalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerDriftQueryHandler() queries.GetLedgerDriftQueryHandler {
	return queries.NewGetLedgerDriftQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDraft:      c.CreateCreateDraftCommandHandler(),
		ConfirmOrder:     c.CreateConfirmOrderCommandHandler(),
		TransitionStatus: c.CreateTransitionStatusCommandHandler(),
		UpdateTotal:      c.CreateUpdateOrderTotalCommandHandler(),
		CommissionReport: c.CreateGetCommissionReportQueryHandler(),
		DailySales:       c.CreateGetDailySalesQueryHandler(),
	}, c.calendar, c.config.PhoneRegion)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetLedgerDriftQueryHandler(), c.config.DriftReportSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}
