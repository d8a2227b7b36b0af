package jobs

import (
	"context"
	"log/slog"

	"folio/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultDriftReportSchedule runs at the top of every hour.
const DefaultDriftReportSchedule = "0 0 * * * *"

type LedgerDriftFinder interface {
	Handle(ctx context.Context, query queries.GetLedgerDriftQuery) ([]queries.LedgerDrift, error)
}

// LedgerDriftReportJob logs orders whose total moved away from what the
// commission ledger billed, for example edits made after IN_PRODUCTION.
// It never writes to the ledger.
type LedgerDriftReportJob struct {
	finder   LedgerDriftFinder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLedgerDriftReportJob creates the job. schedule is a six-field cron spec
// with seconds; an empty one falls back to DefaultDriftReportSchedule.
func NewLedgerDriftReportJob(finder LedgerDriftFinder, schedule string, logger *slog.Logger) *LedgerDriftReportJob {
	if schedule == "" {
		schedule = DefaultDriftReportSchedule
	}
	return &LedgerDriftReportJob{
		finder:   finder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "ledger_drift_report_job"),
	}
}

func (j *LedgerDriftReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger drift report job started", "schedule", j.schedule)
	return nil
}

// Run scans every tenant once and returns the number of drifting orders.
func (j *LedgerDriftReportJob) Run(ctx context.Context) int {
	query, err := queries.NewGetLedgerDriftQuery(nil)
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger drift report job failed", "error", err)
		return 0
	}

	drifts, err := j.finder.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger drift report job failed", "error", err)
		return 0
	}

	for _, d := range drifts {
		j.logger.WarnContext(ctx, "Order total differs from billed total",
			"tenant_id", d.TenantID.String(),
			"order_id", d.OrderID.String(),
			"order_number", d.OrderNumber,
			"status", d.Status,
			"current_total", d.CurrentTotal.String(),
			"billed_total", d.BilledTotal.String(),
			"drift", d.Drift.String(),
		)
	}
	j.logger.InfoContext(ctx, "Ledger drift report finished", "drifting", len(drifts))
	return len(drifts)
}

func (j *LedgerDriftReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Ledger drift report job stopped")
}
