package inventory

import (
	"context"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EquipmentService handles equipment business operations
type EquipmentService struct {
	equipmentRepo inventory.EquipmentRepository
	allocator     numbering.Allocator
}

// NewEquipmentService creates a new EquipmentService
func NewEquipmentService(equipmentRepo inventory.EquipmentRepository, allocator numbering.Allocator) *EquipmentService {
	return &EquipmentService{equipmentRepo: equipmentRepo, allocator: allocator}
}

// Create creates equipment with an allocated E- number
func (s *EquipmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	number, err := s.allocator.Next(ctx, tenantID, numbering.EquipmentSeries, "")
	if err != nil {
		return nil, err
	}

	equipment, err := inventory.NewEquipment(tenantID, number, req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.Model != "" || req.Description != "" || req.Quantity > 0 {
		if err := equipment.Update(req.Name, req.Model, req.Description, req.UnitPrice, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(equipment)
	return &response, nil
}

// GetByID retrieves equipment
func (s *EquipmentService) GetByID(ctx context.Context, tenantID, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(equipment)
	return &response, nil
}

// List retrieves equipment with filtering and pagination
func (s *EquipmentService) List(ctx context.Context, tenantID uuid.UUID, filter EquipmentListFilter) (*shared.Paginated[EquipmentResponse], error) {
	domainFilter := filter.ToFilter()

	equipments, err := s.equipmentRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.equipmentRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]EquipmentResponse, len(equipments))
	for i := range equipments {
		responses[i] = ToEquipmentResponse(&equipments[i])
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates equipment. The number never changes.
func (s *EquipmentService) Update(ctx context.Context, tenantID, equipmentID uuid.UUID, req UpdateEquipmentRequest) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	name := equipment.Name
	if req.Name != nil {
		name = *req.Name
	}
	model := equipment.Model
	if req.Model != nil {
		model = *req.Model
	}
	description := equipment.Description
	if req.Description != nil {
		description = *req.Description
	}
	unitPrice := equipment.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	quantity := equipment.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := equipment.Update(name, model, description, unitPrice, quantity); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(equipment)
	return &response, nil
}

// Delete removes equipment
func (s *EquipmentService) Delete(ctx context.Context, tenantID, equipmentID uuid.UUID) error {
	return s.equipmentRepo.Delete(ctx, tenantID, equipmentID)
}
