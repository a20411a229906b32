package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var expenseSearchColumns = []string{"note"}

var expenseFilterColumns = map[string]bool{
	"sub_head_id":     true,
	"account_head_id": true,
}

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *GormExpenseRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&finance.Expense{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, expenseSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, expenseFilterColumns),
		)
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, ExpenseSortFields, "date")).
		Find(&expenses).Error
	return expenses, err
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Sum totals the filtered expenses. COALESCE keeps an empty page at zero
// instead of NULL.
func (r *GormExpenseRepository) Sum(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.filtered(ctx, tenantID, filter).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return dbc(ctx, r.db).Save(expense).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
