package report

import (
	"time"

	"github.com/gemledger/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportFilter carries report query parameters. Reports take an inclusive
// date range and the shared search term; they are never paginated.
type ReportFilter struct {
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ToFilter converts the query parameters to a domain report filter
func (f ReportFilter) ToFilter(tenantID uuid.UUID) report.Filter {
	return report.Filter{
		TenantID:  tenantID,
		Search:    f.Search,
		StartDate: parseDay(f.StartDate),
		EndDate:   parseDay(f.EndDate),
	}
}

// ExpenseSummaryResponse is the full expense summary report
type ExpenseSummaryResponse struct {
	Groups     []report.ExpenseSummaryGroup `json:"groups"`
	GrandTotal decimal.Decimal              `json:"grand_total"`
	Count      int64                        `json:"count"`
}

// JewellerySummaryResponse is the full jewellery stock summary report
type JewellerySummaryResponse struct {
	Groups      []report.JewellerySummaryGroup `json:"groups"`
	Quantity    int64                          `json:"quantity"`
	TotalWeight decimal.Decimal                `json:"total_weight"`
}

// StatusSummaryResponse is the receivables or payables summary
type StatusSummaryResponse struct {
	Totals      []report.StatusTotal `json:"totals"`
	Amount      decimal.Decimal      `json:"amount"`
	PaidAmount  decimal.Decimal      `json:"paid_amount"`
	Outstanding decimal.Decimal      `json:"outstanding"`
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
