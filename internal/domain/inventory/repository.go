package inventory

import (
	"context"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaratRepository persists carat dimension rows
type CaratRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Carat, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Carat, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, carat *Carat) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// CountDependentJewellery reports how many jewellery items reference the
	// carat; a carat with dependents must not be deleted.
	CountDependentJewellery(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// EquipmentRepository persists equipment
type EquipmentRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Equipment, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Equipment, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, equipment *Equipment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// JewelleryRepository persists jewellery items
type JewelleryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Jewellery, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Jewellery, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *Jewellery) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
