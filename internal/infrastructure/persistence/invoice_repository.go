package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var invoiceSearchColumns = []string{"number", "customer_name"}

var invoiceFilterColumns = map[string]bool{
	"status":      true,
	"customer_id": true,
}

// GormInvoiceRepository implements billing.InvoiceRepository using GORM.
// Every write that touches both the invoice row and its lines runs in one
// transaction so a partial failure rolls back the whole document.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its lines by ID within a tenant
func (r *GormInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := dbc(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its series number within a tenant
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := dbc(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&billing.Invoice{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, invoiceSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, invoiceFilterColumns),
		)
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	err := r.filtered(ctx, tenantID, filter).
		Preload("Items").
		Scopes(PageScope(filter, DocumentSortFields, "date")).
		Find(&invoices).Error
	return invoices, err
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Create inserts the invoice and its lines in one transaction
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		items := invoice.Items
		invoice.Items = nil
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		invoice.Items = items
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
}

// Update persists header fields only
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	return dbc(ctx, r.db).
		Omit("Items").
		Save(invoice).Error
}

// UpdateWithItems replaces the full line set, delete-then-recreate, in the
// same transaction as the header update
func (r *GormInvoiceRepository) UpdateWithItems(ctx context.Context, invoice *billing.Invoice) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		items := invoice.Items
		invoice.Items = nil
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}
		invoice.Items = items
		return tx.Create(&items).Error
	})
}

// Delete removes the lines before the invoice row, in one transaction
func (r *GormInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return dbc(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&billing.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
