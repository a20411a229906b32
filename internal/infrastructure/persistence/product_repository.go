package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var productSearchColumns = []string{"number", "name", "category"}

var productFilterColumns = map[string]bool{
	"category": true,
}

// GormProductRepository implements inventory.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID within a tenant
func (r *GormProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Product, error) {
	var product inventory.Product
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&inventory.Product{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, productSearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, productFilterColumns),
		)
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	var products []inventory.Product
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, StockSortFields, "created_at")).
		Find(&products).Error
	return products, err
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	return dbc(ctx, r.db).Save(product).Error
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&inventory.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
