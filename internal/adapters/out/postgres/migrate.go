package postgres

import (
	"fmt"

	"folio/internal/adapters/out/postgres/auditrepo"
	"folio/internal/adapters/out/postgres/commissionrepo"
	"folio/internal/adapters/out/postgres/orderrepo"
	"folio/internal/adapters/out/postgres/statsrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncation-safe order.
var Tables = []string{
	"audit_log",
	"sales_registrations",
	"daily_sales_stats",
	"commission_ledger",
	"commission_contracts",
	"orders",
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&commissionrepo.ContractDTO{},
		&commissionrepo.LedgerEntryDTO{},
		&statsrepo.DailyStatsDTO{},
		&statsrepo.SaleRegistrationDTO{},
		&auditrepo.AuditEntryDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
