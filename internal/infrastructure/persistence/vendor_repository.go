package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var vendorSearchColumns = []string{"number", "name", "contact_name", "phone", "email"}

var vendorFilterColumns = map[string]bool{
	"status": true,
}

// GormVendorRepository implements partner.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByNumber finds a vendor by its series number within a tenant
func (r *GormVendorRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *GormVendorRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&partner.Vendor{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, vendorSearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, vendorFilterColumns),
		)
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	var vendors []partner.Vendor
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, PartnerSortFields, "created_at")).
		Find(&vendors).Error
	return vendors, err
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByPhone checks if a vendor with the phone exists within a tenant
func (r *GormVendorRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&partner.Vendor{}).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		Count(&count).Error
	return count > 0, err
}

// Save persists a vendor (insert or update)
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return dbc(ctx, r.db).Save(vendor).Error
}

// Delete removes a vendor by ID within a tenant
func (r *GormVendorRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&partner.Vendor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountDependentBills counts bills referencing the vendor
func (r *GormVendorRepository) CountDependentBills(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc(ctx, r.db).
		Table("bills").
		Where("tenant_id = ? AND vendor_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}
