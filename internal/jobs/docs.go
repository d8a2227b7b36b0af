// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(driftHandler, cfg.DriftReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// LedgerDriftReportJob lists orders whose current total no longer matches the
// sum billed in the commission ledger. Totals edited while an order is READY
// or DELIVERED are never reconciled by the ledger, so this report is where
// they surface. It only logs.
package jobs
