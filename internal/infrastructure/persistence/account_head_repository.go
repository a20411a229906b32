package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountHeadRepository implements finance.AccountHeadRepository using GORM
type GormAccountHeadRepository struct {
	db *gorm.DB
}

// NewGormAccountHeadRepository creates a new GormAccountHeadRepository
func NewGormAccountHeadRepository(db *gorm.DB) *GormAccountHeadRepository {
	return &GormAccountHeadRepository{db: db}
}

// FindByID finds an account head by ID within a tenant
func (r *GormAccountHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountHead, error) {
	var head finance.AccountHead
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

// FindByName finds an account head by exact name within a tenant
func (r *GormAccountHeadRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*finance.AccountHead, error) {
	var head finance.AccountHead
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&head).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &head, nil
}

// FindAll returns every account head of the tenant
func (r *GormAccountHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.AccountHead, error) {
	var heads []finance.AccountHead
	err := dbc(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&heads).Error
	return heads, err
}

// Save creates or updates an account head
func (r *GormAccountHeadRepository) Save(ctx context.Context, head *finance.AccountHead) error {
	return dbc(ctx, r.db).Save(head).Error
}

// Delete removes an account head
func (r *GormAccountHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.AccountHead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
