package http

import (
	"time"

	"folio/internal/core/application/usecases/commands"
	"folio/internal/core/application/usecases/queries"
	"folio/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest never carries tenant, branch or owner; those come from
// the actor headers.
type CreateOrderRequest struct {
	Number        string          `json:"number"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Description   string          `json:"description"`
	DeliveryDate  *time.Time      `json:"deliveryDate"`
	Total         decimal.Decimal `json:"total"`
	Advance       decimal.Decimal `json:"advance"`
}

func (r CreateOrderRequest) toInput() commands.DraftInput {
	return commands.DraftInput{
		Number:        r.Number,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Description:   r.Description,
		DeliveryDate:  r.DeliveryDate,
		Total:         r.Total,
		Advance:       r.Advance,
	}
}

type TransitionStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type UpdateTotalRequest struct {
	Total   *decimal.Decimal `json:"total"`
	Advance *decimal.Decimal `json:"advance"`
}

type OrderResponse struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	TenantID          string          `json:"tenantId"`
	BranchID          *string         `json:"branchId"`
	ResponsibleUserID string          `json:"responsibleUserId"`
	CustomerName      string          `json:"customerName"`
	CustomerPhone     string          `json:"customerPhone"`
	Description       string          `json:"description,omitempty"`
	DeliveryDate      *time.Time      `json:"deliveryDate,omitempty"`
	Total             decimal.Decimal `json:"total"`
	Advance           decimal.Decimal `json:"advance"`
	Balance           decimal.Decimal `json:"balance"`
	Status            string          `json:"status"`
	LegacyStatus      string          `json:"legacyStatus"`
	ConfirmedAt       *time.Time      `json:"confirmedAt,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
	CancelReason      string          `json:"cancelReason,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	var branchID *string
	if id := o.BranchID(); id != nil {
		s := id.String()
		branchID = &s
	}

	return OrderResponse{
		ID:                o.ID().String(),
		Number:            o.Number(),
		TenantID:          o.TenantID().String(),
		BranchID:          branchID,
		ResponsibleUserID: o.ResponsibleUserID().String(),
		CustomerName:      o.CustomerName(),
		CustomerPhone:     o.CustomerPhone().String(),
		Description:       o.Description(),
		DeliveryDate:      o.DeliveryDate(),
		Total:             o.Total(),
		Advance:           o.Advance(),
		Balance:           o.Balance(),
		Status:            o.Status().String(),
		LegacyStatus:      string(o.LegacyStatus()),
		ConfirmedAt:       o.ConfirmedAt(),
		CancelledAt:       o.CancelledAt(),
		CancelReason:      o.CancelReason(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

type CommissionLineResponse struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"orderId"`
	OrderNumber        string          `json:"orderNumber"`
	BranchID           *string         `json:"branchId"`
	OrderTotalSnapshot decimal.Decimal `json:"orderTotalSnapshot"`
	CommissionAmount   decimal.Decimal `json:"commissionAmount"`
	Status             string          `json:"status"`
	Kind               string          `json:"kind"`
	CreatedAt          time.Time       `json:"createdAt"`
}

type CommissionTotalsResponse struct {
	Entries    int             `json:"entries"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
	Commission decimal.Decimal `json:"commission"`
}

type CommissionReportResponse struct {
	From     string                              `json:"from"`
	To       string                              `json:"to"`
	Entries  []CommissionLineResponse            `json:"entries"`
	ByStatus map[string]CommissionTotalsResponse `json:"byStatus"`
	Total    CommissionTotalsResponse            `json:"total"`
}

func newCommissionReportResponse(from, to time.Time, report queries.GetCommissionReportQueryResponse) CommissionReportResponse {
	response := CommissionReportResponse{
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Entries:  make([]CommissionLineResponse, len(report.Lines)),
		ByStatus: make(map[string]CommissionTotalsResponse, len(report.ByStatus)),
		Total:    CommissionTotalsResponse(report.Total),
	}

	for i, line := range report.Lines {
		var branchID *string
		if line.BranchID != nil {
			s := line.BranchID.String()
			branchID = &s
		}
		response.Entries[i] = CommissionLineResponse{
			ID:                 line.ID.String(),
			OrderID:            line.SourceOrderID.String(),
			OrderNumber:        line.OrderNumber,
			BranchID:           branchID,
			OrderTotalSnapshot: line.OrderTotalSnapshot,
			CommissionAmount:   line.CommissionAmount,
			Status:             line.Status,
			Kind:               line.Kind,
			CreatedAt:          line.CreatedAt,
		}
	}
	for status, totals := range report.ByStatus {
		response.ByStatus[status] = CommissionTotalsResponse(totals)
	}
	return response
}

type DailySalesLineResponse struct {
	Date        string          `json:"date"`
	BranchID    *string         `json:"branchId"`
	OrdersCount int64           `json:"ordersCount"`
	TotalSales  decimal.Decimal `json:"totalSales"`
}

type DailySalesResponse struct {
	Days        []DailySalesLineResponse `json:"days"`
	OrdersCount int64                    `json:"ordersCount"`
	TotalSales  decimal.Decimal          `json:"totalSales"`
}

func newDailySalesResponse(sales queries.GetDailySalesQueryResponse) DailySalesResponse {
	response := DailySalesResponse{
		Days:        make([]DailySalesLineResponse, len(sales.Lines)),
		OrdersCount: sales.OrdersCount,
		TotalSales:  sales.TotalSales,
	}
	for i, line := range sales.Lines {
		var branchID *string
		if line.BranchID != nil {
			s := line.BranchID.String()
			branchID = &s
		}
		response.Days[i] = DailySalesLineResponse{
			Date:        line.Date.Format(dateLayout),
			BranchID:    branchID,
			OrdersCount: line.OrdersCount,
			TotalSales:  line.TotalSales,
		}
	}
	return response
}
