package queries

import (
	"context"
	"strings"

	"folio/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLedgerDriftQueryHandler is read-only; it never touches the ledger rows it reports.
type GetLedgerDriftQueryHandler struct {
	db *gorm.DB
}

func NewGetLedgerDriftQueryHandler(db *gorm.DB) GetLedgerDriftQueryHandler {
	return GetLedgerDriftQueryHandler{db: db}
}

func (h GetLedgerDriftQueryHandler) Handle(ctx context.Context, query GetLedgerDriftQuery) ([]LedgerDrift, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sql strings.Builder
	var args []any
	sql.WriteString(`
		SELECT
			o.id,
			o.tenant_id,
			o.order_number,
			o.status,
			o.total,
			SUM(l.order_total_snapshot) AS billed,
			COUNT(l.id)
		FROM orders o
		JOIN commission_ledger l ON l.source_order_id = o.id AND l.tenant_id = o.tenant_id`)
	if query.TenantID() != nil {
		sql.WriteString(" WHERE o.tenant_id = ?")
		args = append(args, query.TenantID().Bytes())
	}
	sql.WriteString(`
		GROUP BY o.id, o.tenant_id, o.order_number, o.status, o.total
		HAVING o.total <> SUM(l.order_total_snapshot)
		ORDER BY o.tenant_id, o.order_number`)

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drifts := make([]LedgerDrift, 0)
	for rows.Next() {
		var drift LedgerDrift
		var orderID, tenantID uuid.UUID

		err = rows.Scan(
			&orderID,
			&tenantID,
			&drift.OrderNumber,
			&drift.Status,
			&drift.CurrentTotal,
			&drift.BilledTotal,
			&drift.LedgerRows,
		)
		if err != nil {
			return nil, err
		}

		if drift.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if drift.TenantID, err = kernel.UUIDFromBytes(tenantID[:]); err != nil {
			return nil, err
		}
		drift.Drift = drift.CurrentTotal.Sub(drift.BilledTotal)
		drifts = append(drifts, drift)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drifts, nil
}
