package queries

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type GetDailySalesQueryHandler struct {
	db *gorm.DB
}

func NewGetDailySalesQueryHandler(db *gorm.DB) GetDailySalesQueryHandler {
	return GetDailySalesQueryHandler{db: db}
}

// Handle returns lines ordered by date, then branch.
func (h GetDailySalesQueryHandler) Handle(
	ctx context.Context,
	query GetDailySalesQuery,
) (GetDailySalesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDailySalesQueryResponse{}, err
	}

	var sql strings.Builder
	sql.WriteString(`
		SELECT date, branch_id, orders_count, total_sales
		FROM daily_sales_stats
		WHERE tenant_id = ? AND date >= ? AND date <= ?`)
	args := []any{query.TenantID().Bytes(), query.From().Format(dateLayout), query.To().Format(dateLayout)}
	if query.BranchID() != nil {
		sql.WriteString(" AND branch_id = ?")
		args = append(args, query.BranchID().Bytes())
	}
	sql.WriteString(" ORDER BY date, branch_id")

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return GetDailySalesQueryResponse{}, err
	}
	defer rows.Close()

	response := GetDailySalesQueryResponse{Lines: make([]DailySalesLine, 0), TotalSales: decimal.Zero}
	for rows.Next() {
		var line DailySalesLine
		var branchID uuid.UUID

		if err = rows.Scan(&line.Date, &branchID, &line.OrdersCount, &line.TotalSales); err != nil {
			return GetDailySalesQueryResponse{}, err
		}

		// uuid.Nil stands for "no branch" in the rollup key.
		if line.BranchID, err = nullableUUID(uuid.NullUUID{UUID: branchID, Valid: branchID != uuid.Nil}); err != nil {
			return GetDailySalesQueryResponse{}, err
		}

		response.Lines = append(response.Lines, line)
		response.OrdersCount += line.OrdersCount
		response.TotalSales = response.TotalSales.Add(line.TotalSales)
	}

	if err = rows.Err(); err != nil {
		return GetDailySalesQueryResponse{}, err
	}

	return response, nil
}
