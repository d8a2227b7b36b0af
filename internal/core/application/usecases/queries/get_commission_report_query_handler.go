package queries

import (
	"context"

	"folio/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCommissionReportQueryHandler reads the commission ledger for billing.
type GetCommissionReportQueryHandler struct {
	db *gorm.DB
}

func NewGetCommissionReportQueryHandler(db *gorm.DB) GetCommissionReportQueryHandler {
	return GetCommissionReportQueryHandler{db: db}
}

// Handle returns lines oldest first. Rows of orders in other tenants are
// never read.
func (h GetCommissionReportQueryHandler) Handle(
	ctx context.Context,
	query GetCommissionReportQuery,
) (GetCommissionReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCommissionReportQueryResponse{}, err
	}

	response := GetCommissionReportQueryResponse{
		Lines:    make([]CommissionReportLine, 0),
		ByStatus: make(map[string]CommissionTotals),
		Total:    CommissionTotals{OrderTotal: decimal.Zero, Commission: decimal.Zero},
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.source_order_id,
			COALESCE(o.order_number, ''),
			l.branch_id,
			l.order_total_snapshot,
			l.commission_amount,
			l.status,
			l.kind,
			l.created_at
		FROM commission_ledger l
		LEFT JOIN orders o ON o.id = l.source_order_id AND o.tenant_id = l.tenant_id
		WHERE l.tenant_id = ? AND l.created_at >= ? AND l.created_at < ?
		ORDER BY l.created_at, l.id
	`, query.TenantID().Bytes(), query.From(), query.To()).Rows()
	if err != nil {
		return GetCommissionReportQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CommissionReportLine
		var id, orderID uuid.UUID
		var branchID uuid.NullUUID

		err = rows.Scan(
			&id,
			&orderID,
			&line.OrderNumber,
			&branchID,
			&line.OrderTotalSnapshot,
			&line.CommissionAmount,
			&line.Status,
			&line.Kind,
			&line.CreatedAt,
		)
		if err != nil {
			return GetCommissionReportQueryResponse{}, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetCommissionReportQueryResponse{}, err
		}
		if line.SourceOrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetCommissionReportQueryResponse{}, err
		}
		if line.BranchID, err = nullableUUID(branchID); err != nil {
			return GetCommissionReportQueryResponse{}, err
		}

		response.Lines = append(response.Lines, line)
		response.Total = response.Total.add(line)
		byStatus, ok := response.ByStatus[line.Status]
		if !ok {
			byStatus = CommissionTotals{OrderTotal: decimal.Zero, Commission: decimal.Zero}
		}
		response.ByStatus[line.Status] = byStatus.add(line)
	}

	if err = rows.Err(); err != nil {
		return GetCommissionReportQueryResponse{}, err
	}

	return response, nil
}

func nullableUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
