package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var jewellerySearchColumns = []string{"number", "name"}

var jewelleryFilterColumns = map[string]bool{
	"carat_id": true,
}

// GormJewelleryRepository implements inventory.JewelleryRepository using GORM
type GormJewelleryRepository struct {
	db *gorm.DB
}

// NewGormJewelleryRepository creates a new GormJewelleryRepository
func NewGormJewelleryRepository(db *gorm.DB) *GormJewelleryRepository {
	return &GormJewelleryRepository{db: db}
}

// FindByID finds a jewellery item by ID within a tenant
func (r *GormJewelleryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Jewellery, error) {
	var item inventory.Jewellery
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormJewelleryRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&inventory.Jewellery{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, jewellerySearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, jewelleryFilterColumns),
		)
}

// FindAll finds all jewellery items matching the filter
func (r *GormJewelleryRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Jewellery, error) {
	var items []inventory.Jewellery
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, StockSortFields, "created_at")).
		Find(&items).Error
	return items, err
}

// Count counts jewellery items matching the filter
func (r *GormJewelleryRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Save creates or updates a jewellery item
func (r *GormJewelleryRepository) Save(ctx context.Context, item *inventory.Jewellery) error {
	return dbc(ctx, r.db).Save(item).Error
}

// Delete removes a jewellery item
func (r *GormJewelleryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&inventory.Jewellery{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCaratRepository implements inventory.CaratRepository using GORM
type GormCaratRepository struct {
	db *gorm.DB
}

// NewGormCaratRepository creates a new GormCaratRepository
func NewGormCaratRepository(db *gorm.DB) *GormCaratRepository {
	return &GormCaratRepository{db: db}
}

// FindByID finds a carat by ID within a tenant
func (r *GormCaratRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Carat, error) {
	var carat inventory.Carat
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&carat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &carat, nil
}

// FindAll returns every carat of the tenant
func (r *GormCaratRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]inventory.Carat, error) {
	var carats []inventory.Carat
	err := dbc(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&carats).Error
	return carats, err
}

// ExistsByName checks if a carat with the name exists in the tenant
func (r *GormCaratRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&inventory.Carat{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a carat
func (r *GormCaratRepository) Save(ctx context.Context, carat *inventory.Carat) error {
	return dbc(ctx, r.db).Save(carat).Error
}

// Delete removes a carat
func (r *GormCaratRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&inventory.Carat{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountDependentJewellery counts jewellery items referencing the carat
func (r *GormCaratRepository) CountDependentJewellery(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&inventory.Jewellery{}).
		Where("tenant_id = ? AND carat_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}
