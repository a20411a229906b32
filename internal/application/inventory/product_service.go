package inventory

import (
	"context"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo inventory.ProductRepository
	allocator   numbering.Allocator
}

// NewProductService creates a new ProductService
func NewProductService(productRepo inventory.ProductRepository, allocator numbering.Allocator) *ProductService {
	return &ProductService{productRepo: productRepo, allocator: allocator}
}

// Create creates a product with an allocated P- number
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	number, err := s.allocator.Next(ctx, tenantID, numbering.ProductSeries, "")
	if err != nil {
		return nil, err
	}

	product, err := inventory.NewProduct(tenantID, number, req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.Category != "" || req.Unit != "" || req.Description != "" || req.Quantity > 0 {
		if err := product.Update(req.Name, req.Category, req.Unit, req.Description, req.UnitPrice, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := filter.ToFilter()

	products, err := s.productRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a product. The number never changes.
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	unit := product.Unit
	if req.Unit != nil {
		unit = *req.Unit
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	unitPrice := product.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	quantity := product.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := product.Update(name, category, unit, description, unitPrice, quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, tenantID, productID)
}
