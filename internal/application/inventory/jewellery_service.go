package inventory

import (
	"context"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JewelleryService handles jewellery stock business operations
type JewelleryService struct {
	jewelleryRepo inventory.JewelleryRepository
	caratRepo     inventory.CaratRepository
	allocator     numbering.Allocator
}

// NewJewelleryService creates a new JewelleryService
func NewJewelleryService(
	jewelleryRepo inventory.JewelleryRepository,
	caratRepo inventory.CaratRepository,
	allocator numbering.Allocator,
) *JewelleryService {
	return &JewelleryService{jewelleryRepo: jewelleryRepo, caratRepo: caratRepo, allocator: allocator}
}

// Create creates a jewellery item with an allocated J- number. The carat
// must exist for the tenant.
func (s *JewelleryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateJewelleryRequest) (*JewelleryResponse, error) {
	if _, err := s.caratRepo.FindByID(ctx, tenantID, req.CaratID); err != nil {
		return nil, err
	}

	number, err := s.allocator.Next(ctx, tenantID, numbering.JewellerySeries, "")
	if err != nil {
		return nil, err
	}

	item, err := inventory.NewJewellery(tenantID, number, req.Name, req.CaratID, req.Weight, req.Price)
	if err != nil {
		return nil, err
	}
	if !req.MakingCharge.IsZero() || req.Description != "" || req.Quantity > 0 {
		if err := item.Update(req.Name, req.Description, req.CaratID, req.Weight, req.MakingCharge, req.Price, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.jewelleryRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToJewelleryResponse(item)
	return &response, nil
}

// GetByID retrieves a jewellery item
func (s *JewelleryService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*JewelleryResponse, error) {
	item, err := s.jewelleryRepo.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	response := ToJewelleryResponse(item)
	return &response, nil
}

// List retrieves jewellery items with filtering and pagination
func (s *JewelleryService) List(ctx context.Context, tenantID uuid.UUID, filter JewelleryListFilter) (*shared.Paginated[JewelleryResponse], error) {
	domainFilter := filter.ToFilter()

	items, err := s.jewelleryRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.jewelleryRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]JewelleryResponse, len(items))
	for i := range items {
		responses[i] = ToJewelleryResponse(&items[i])
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a jewellery item. The number never changes; switching the
// carat requires the target carat to exist.
func (s *JewelleryService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateJewelleryRequest) (*JewelleryResponse, error) {
	item, err := s.jewelleryRepo.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	caratID := item.CaratID
	if req.CaratID != nil && *req.CaratID != item.CaratID {
		if _, err := s.caratRepo.FindByID(ctx, tenantID, *req.CaratID); err != nil {
			return nil, err
		}
		caratID = *req.CaratID
	}
	name := item.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := item.Description
	if req.Description != nil {
		description = *req.Description
	}
	weight := item.Weight
	if req.Weight != nil {
		weight = *req.Weight
	}
	makingCharge := item.MakingCharge
	if req.MakingCharge != nil {
		makingCharge = *req.MakingCharge
	}
	price := item.Price
	if req.Price != nil {
		price = *req.Price
	}
	quantity := item.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := item.Update(name, description, caratID, weight, makingCharge, price, quantity); err != nil {
		return nil, err
	}

	if err := s.jewelleryRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToJewelleryResponse(item)
	return &response, nil
}

// Delete removes a jewellery item
func (s *JewelleryService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.jewelleryRepo.Delete(ctx, tenantID, itemID)
}
