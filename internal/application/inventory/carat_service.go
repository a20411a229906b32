package inventory

import (
	"context"
	"fmt"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/gemledger/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
)

const dimCarats = "carats"

// CaratService manages the carat dimension
type CaratService struct {
	caratRepo inventory.CaratRepository
	cache     *cache.DimensionCache
}

// NewCaratService creates a new CaratService
func NewCaratService(caratRepo inventory.CaratRepository, dimCache *cache.DimensionCache) *CaratService {
	return &CaratService{caratRepo: caratRepo, cache: dimCache}
}

// Create creates a carat
func (s *CaratService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCaratRequest) (*CaratResponse, error) {
	exists, err := s.caratRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Carat with this name already exists")
	}

	carat, err := inventory.NewCarat(tenantID, req.Name, req.Purity)
	if err != nil {
		return nil, err
	}

	if err := s.caratRepo.Save(ctx, carat); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimCarats)

	response := ToCaratResponse(carat)
	return &response, nil
}

// List returns all carats of the tenant, cache-aside
func (s *CaratService) List(ctx context.Context, tenantID uuid.UUID) ([]CaratResponse, error) {
	if cached, ok := cache.GetList[CaratResponse](ctx, s.cache, tenantID, dimCarats); ok {
		return cached, nil
	}

	carats, err := s.caratRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]CaratResponse, len(carats))
	for i := range carats {
		responses[i] = ToCaratResponse(&carats[i])
	}
	cache.SetList(ctx, s.cache, tenantID, dimCarats, responses)
	return responses, nil
}

// Update updates a carat
func (s *CaratService) Update(ctx context.Context, tenantID, caratID uuid.UUID, req UpdateCaratRequest) (*CaratResponse, error) {
	carat, err := s.caratRepo.FindByID(ctx, tenantID, caratID)
	if err != nil {
		return nil, err
	}

	name := carat.Name
	if req.Name != nil {
		name = *req.Name
	}
	purity := carat.Purity
	if req.Purity != nil {
		purity = *req.Purity
	}

	if err := carat.Update(name, purity); err != nil {
		return nil, err
	}

	if err := s.caratRepo.Save(ctx, carat); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimCarats)

	response := ToCaratResponse(carat)
	return &response, nil
}

// Delete removes a carat unless jewellery items still reference it
func (s *CaratService) Delete(ctx context.Context, tenantID, caratID uuid.UUID) error {
	dependents, err := s.caratRepo.CountDependentJewellery(ctx, tenantID, caratID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("HAS_DEPENDENTS",
			fmt.Sprintf("Carat is referenced by %d jewellery items and cannot be deleted", dependents))
	}

	if err := s.caratRepo.Delete(ctx, tenantID, caratID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tenantID, dimCarats)
	return nil
}
