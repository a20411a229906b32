package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var equipmentSearchColumns = []string{"number", "name", "model"}

// GormEquipmentRepository implements inventory.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID finds an equipment item by ID within a tenant
func (r *GormEquipmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Equipment, error) {
	var equipment inventory.Equipment
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *GormEquipmentRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&inventory.Equipment{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, equipmentSearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
		)
}

// FindAll finds all equipment matching the filter
func (r *GormEquipmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Equipment, error) {
	var equipments []inventory.Equipment
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, StockSortFields, "created_at")).
		Find(&equipments).Error
	return equipments, err
}

// Count counts equipment matching the filter
func (r *GormEquipmentRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Save creates or updates an equipment item
func (r *GormEquipmentRepository) Save(ctx context.Context, equipment *inventory.Equipment) error {
	return dbc(ctx, r.db).Save(equipment).Error
}

// Delete removes an equipment item
func (r *GormEquipmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&inventory.Equipment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
