package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	ledgerDriftReportJob *LedgerDriftReportJob
}

func NewJobManager(driftFinder LedgerDriftFinder, driftSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		ledgerDriftReportJob: NewLedgerDriftReportJob(driftFinder, driftSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.ledgerDriftReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger drift report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.ledgerDriftReportJob.Stop()
}
