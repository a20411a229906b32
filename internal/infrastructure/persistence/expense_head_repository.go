package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseHeadRepository implements finance.ExpenseHeadRepository using GORM
type GormExpenseHeadRepository struct {
	db *gorm.DB
}

// NewGormExpenseHeadRepository creates a new GormExpenseHeadRepository
func NewGormExpenseHeadRepository(db *gorm.DB) *GormExpenseHeadRepository {
	return &GormExpenseHeadRepository{db: db}
}

// FindByID finds an expense head by ID within a tenant
func (r *GormExpenseHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseHead, error) {
	var head finance.ExpenseHead
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&head).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &head, nil
}

// FindAll returns every expense head of the tenant, newest first. Dimension
// tables stay small, so no pagination here.
func (r *GormExpenseHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseHead, error) {
	var heads []finance.ExpenseHead
	err := dbc(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&heads).Error
	return heads, err
}

// ExistsByName checks if an expense head with the name exists in the tenant
func (r *GormExpenseHeadRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&finance.ExpenseHead{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates an expense head
func (r *GormExpenseHeadRepository) Save(ctx context.Context, head *finance.ExpenseHead) error {
	return dbc(ctx, r.db).Save(head).Error
}

// Delete removes an expense head
func (r *GormExpenseHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.ExpenseHead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountSubHeads counts sub-heads attached to the head
func (r *GormExpenseHeadRepository) CountSubHeads(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&finance.ExpenseSubHead{}).
		Where("tenant_id = ? AND head_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}

// GormExpenseSubHeadRepository implements finance.ExpenseSubHeadRepository using GORM
type GormExpenseSubHeadRepository struct {
	db *gorm.DB
}

// NewGormExpenseSubHeadRepository creates a new GormExpenseSubHeadRepository
func NewGormExpenseSubHeadRepository(db *gorm.DB) *GormExpenseSubHeadRepository {
	return &GormExpenseSubHeadRepository{db: db}
}

// FindByID finds an expense sub-head by ID within a tenant
func (r *GormExpenseSubHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseSubHead, error) {
	var subHead finance.ExpenseSubHead
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&subHead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subHead, nil
}

// FindAll returns every expense sub-head of the tenant, newest first
func (r *GormExpenseSubHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseSubHead, error) {
	var subHeads []finance.ExpenseSubHead
	err := dbc(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&subHeads).Error
	return subHeads, err
}

// ExistsByName checks if a sub-head with the name exists in the tenant
func (r *GormExpenseSubHeadRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&finance.ExpenseSubHead{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates an expense sub-head
func (r *GormExpenseSubHeadRepository) Save(ctx context.Context, subHead *finance.ExpenseSubHead) error {
	return dbc(ctx, r.db).Save(subHead).Error
}

// Delete removes an expense sub-head
func (r *GormExpenseSubHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.ExpenseSubHead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountDependentExpenses counts expense records referencing the sub-head
func (r *GormExpenseSubHeadRepository) CountDependentExpenses(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&finance.Expense{}).
		Where("tenant_id = ? AND sub_head_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}
