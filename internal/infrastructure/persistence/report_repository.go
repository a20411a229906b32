package persistence

import (
	"context"

	"github.com/gemledger/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository using GORM. Each query
// aggregates in SQL and returns unlabeled rows; labeling is done upstream.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ExpenseTotalsBySubHead sums expenses in the date window grouped by sub-head
func (r *GormReportRepository) ExpenseTotalsBySubHead(ctx context.Context, filter report.Filter) ([]report.ExpenseAggregateRow, error) {
	var rows []report.ExpenseAggregateRow
	err := dbc(ctx, r.db).
		Table("expenses").
		Select("sub_head_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("tenant_id = ?", filter.TenantID).
		Scopes(
			SearchScope(filter.Search, expenseSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
		).
		Group("sub_head_id").
		Scan(&rows).Error
	return rows, err
}

// JewelleryStockByCarat sums on-hand jewellery stock grouped by carat.
// Weight is multiplied by quantity so the total reflects pieces in stock.
func (r *GormReportRepository) JewelleryStockByCarat(ctx context.Context, filter report.Filter) ([]report.JewelleryAggregateRow, error) {
	var rows []report.JewelleryAggregateRow
	err := dbc(ctx, r.db).
		Table("jewellery_items").
		Select("carat_id, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(weight * quantity), 0) AS total_weight").
		Where("tenant_id = ?", filter.TenantID).
		Scopes(
			SearchScope(filter.Search, jewellerySearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
		).
		Group("carat_id").
		Scan(&rows).Error
	return rows, err
}

func (r *GormReportRepository) statusTotals(ctx context.Context, table string, searchColumns []string, filter report.Filter) ([]report.StatusTotal, error) {
	var rows []report.StatusTotal
	err := dbc(ctx, r.db).
		Table(table).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(paid_amount), 0) AS paid_amount, COALESCE(SUM(amount - paid_amount), 0) AS outstanding").
		Where("tenant_id = ?", filter.TenantID).
		Scopes(
			SearchScope(filter.Search, searchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
		).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// InvoiceTotalsByStatus sums invoice amounts grouped by document status
func (r *GormReportRepository) InvoiceTotalsByStatus(ctx context.Context, filter report.Filter) ([]report.StatusTotal, error) {
	return r.statusTotals(ctx, "invoices", invoiceSearchColumns, filter)
}

// BillTotalsByStatus sums bill amounts grouped by document status
func (r *GormReportRepository) BillTotalsByStatus(ctx context.Context, filter report.Filter) ([]report.StatusTotal, error) {
	return r.statusTotals(ctx, "bills", billSearchColumns, filter)
}
