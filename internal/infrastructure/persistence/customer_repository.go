package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var customerSearchColumns = []string{"number", "name", "contact_name", "phone", "email"}

var customerFilterColumns = map[string]bool{
	"status":     true,
	"group_name": true,
}

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByNumber finds a customer by its series number within a tenant
func (r *GormCustomerRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*partner.Customer, error) {
	var customer partner.Customer
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&partner.Customer{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, customerSearchColumns),
			DateRangeScope("created_at", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, customerFilterColumns),
		)
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, PartnerSortFields, "created_at")).
		Find(&customers).Error
	return customers, err
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByPhone checks if a customer with the phone exists within a tenant
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&partner.Customer{}).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if a customer with the email exists within a tenant
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	err := dbc(ctx, r.db).
		Model(&partner.Customer{}).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		Count(&count).Error
	return count > 0, err
}

// Save persists a customer (insert or update)
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return dbc(ctx, r.db).Save(customer).Error
}

// Delete removes a customer by ID within a tenant
func (r *GormCustomerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&partner.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountDependentInvoices counts invoices referencing the customer
func (r *GormCustomerRepository) CountDependentInvoices(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc(ctx, r.db).
		Table("invoices").
		Where("tenant_id = ? AND customer_id = ?", tenantID, id).
		Count(&count).Error
	return count, err
}
