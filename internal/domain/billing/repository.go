package billing

import (
	"context"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository persists invoices together with their lines. Save and
// Delete are atomic over parent and children; SaveWithItems replaces the
// full child set in the parent's transaction.
type InvoiceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, invoice *Invoice) error
	// Update persists header fields only; lines are untouched.
	Update(ctx context.Context, invoice *Invoice) error
	// UpdateWithItems persists the header and replaces the full line set,
	// delete-then-recreate, in one transaction.
	UpdateWithItems(ctx context.Context, invoice *Invoice) error
	// Delete removes lines before the parent row, in one transaction.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// BillRepository persists bills together with their lines
type BillRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Bill, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Bill, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, bill *Bill) error
	Update(ctx context.Context, bill *Bill) error
	UpdateWithItems(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
