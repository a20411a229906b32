package partner

import (
	"context"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Customer, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// CountDependentInvoices reports how many invoices reference the customer;
	// a customer with dependents must not be deleted.
	CountDependentInvoices(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// VendorRepository persists vendors
type VendorRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Vendor, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)
	Save(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountDependentBills(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}
