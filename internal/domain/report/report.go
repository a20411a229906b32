package report

import (
	"context"
	"time"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter bounds a report to a tenant and an inclusive date range. Reports
// are never paginated; they cover the full filtered dataset.
type Filter struct {
	TenantID  uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// ExpenseAggregateRow is one grouped row as returned by storage, keyed by
// the sub-head foreign key and not yet labeled.
type ExpenseAggregateRow struct {
	SubHeadID uuid.UUID
	Total     decimal.Decimal
	Count     int64
}

// ExpenseSummaryGroup is one labeled output row of the expense summary.
// HeadName/SubHeadName are empty when the dimension row has been deleted;
// the group is still reported.
type ExpenseSummaryGroup struct {
	SubHeadID   uuid.UUID       `json:"sub_head_id"`
	SubHeadName string          `json:"sub_head_name,omitempty"`
	HeadName    string          `json:"head_name,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Count       int64           `json:"count"`
}

// JewelleryAggregateRow is one grouped stock row keyed by carat
type JewelleryAggregateRow struct {
	CaratID     uuid.UUID
	Quantity    int64
	TotalWeight decimal.Decimal
}

// JewellerySummaryGroup is one labeled output row of the stock summary
type JewellerySummaryGroup struct {
	CaratID     uuid.UUID       `json:"carat_id"`
	CaratName   string          `json:"carat_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	TotalWeight decimal.Decimal `json:"total_weight"`
}

// StatusTotal is one per-status row of the receivables/payables summary
type StatusTotal struct {
	Status      billing.DocumentStatus `json:"status"`
	Count       int64                  `json:"count"`
	Amount      decimal.Decimal        `json:"amount"`
	PaidAmount  decimal.Decimal        `json:"paid_amount"`
	Outstanding decimal.Decimal        `json:"outstanding"`
}

// Repository fetches grouped aggregates from storage. The in-memory label
// join and ordering happen in the application layer.
type Repository interface {
	ExpenseTotalsBySubHead(ctx context.Context, filter Filter) ([]ExpenseAggregateRow, error)
	JewelleryStockByCarat(ctx context.Context, filter Filter) ([]JewelleryAggregateRow, error)
	InvoiceTotalsByStatus(ctx context.Context, filter Filter) ([]StatusTotal, error)
	BillTotalsByStatus(ctx context.Context, filter Filter) ([]StatusTotal, error)
}
