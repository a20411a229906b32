package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var billSearchColumns = []string{"number", "vendor_name"}

var billFilterColumns = map[string]bool{
	"status":    true,
	"vendor_id": true,
}

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill with its lines by ID within a tenant
func (r *GormBillRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var bill billing.Bill
	if err := dbc(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByNumber finds a bill by its series number within a tenant
func (r *GormBillRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Bill, error) {
	var bill billing.Bill
	if err := dbc(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *GormBillRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&billing.Bill{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, billSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, billFilterColumns),
		)
}

// FindAll finds all bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	var bills []billing.Bill
	err := r.filtered(ctx, tenantID, filter).
		Preload("Items").
		Scopes(PageScope(filter, DocumentSortFields, "date")).
		Find(&bills).Error
	return bills, err
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Create inserts the bill and its lines in one transaction
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		items := bill.Items
		bill.Items = nil
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		bill.Items = items
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
}

// Update persists header fields only
func (r *GormBillRepository) Update(ctx context.Context, bill *billing.Bill) error {
	return dbc(ctx, r.db).
		Omit("Items").
		Save(bill).Error
}

// UpdateWithItems replaces the full line set in the header's transaction
func (r *GormBillRepository) UpdateWithItems(ctx context.Context, bill *billing.Bill) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&billing.BillItem{}).Error; err != nil {
			return err
		}
		items := bill.Items
		bill.Items = nil
		if err := tx.Omit("Items").Save(bill).Error; err != nil {
			return err
		}
		bill.Items = items
		return tx.Create(&items).Error
	})
}

// Delete removes the lines before the bill row, in one transaction
func (r *GormBillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&billing.BillItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&billing.Bill{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
