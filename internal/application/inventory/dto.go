package inventory

import (
	"time"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Category    string          `json:"category" binding:"max=100"`
	Unit        string          `json:"unit" binding:"max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Description string          `json:"description" binding:"max=1000"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Number:      p.Number,
		Name:        p.Name,
		Category:    p.Category,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		Quantity:    p.Quantity,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductListFilter carries product list query parameters
type ProductListFilter struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Category  string `form:"category"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ToFilter converts the query parameters to a domain filter
func (f ProductListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	return filter
}

// CreateEquipmentRequest represents a request to create equipment
type CreateEquipmentRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Model       string          `json:"model" binding:"max=100"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Description string          `json:"description" binding:"max=1000"`
}

// UpdateEquipmentRequest represents a request to update equipment
type UpdateEquipmentRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Model       *string          `json:"model" binding:"omitempty,max=100"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
}

// EquipmentResponse represents equipment in API responses
type EquipmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Model       string          `json:"model,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToEquipmentResponse converts domain equipment to a response DTO
func ToEquipmentResponse(e *inventory.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:          e.ID,
		Number:      e.Number,
		Name:        e.Name,
		Model:       e.Model,
		UnitPrice:   e.UnitPrice,
		Quantity:    e.Quantity,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EquipmentListFilter carries equipment list query parameters
type EquipmentListFilter struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ToFilter converts the query parameters to a domain filter
func (f EquipmentListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	return filter
}

// CreateJewelleryRequest represents a request to create a jewellery item
type CreateJewelleryRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	CaratID      uuid.UUID       `json:"carat_id" binding:"required"`
	Weight       decimal.Decimal `json:"weight" binding:"required"`
	MakingCharge decimal.Decimal `json:"making_charge"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Quantity     int             `json:"quantity" binding:"min=0"`
	Description  string          `json:"description" binding:"max=1000"`
}

// UpdateJewelleryRequest represents a request to update a jewellery item
type UpdateJewelleryRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	CaratID      *uuid.UUID       `json:"carat_id"`
	Weight       *decimal.Decimal `json:"weight"`
	MakingCharge *decimal.Decimal `json:"making_charge"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity" binding:"omitempty,min=0"`
	Description  *string          `json:"description" binding:"omitempty,max=1000"`
}

// JewelleryResponse represents a jewellery item in API responses
type JewelleryResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Name         string          `json:"name"`
	CaratID      uuid.UUID       `json:"carat_id"`
	Weight       decimal.Decimal `json:"weight"`
	MakingCharge decimal.Decimal `json:"making_charge"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToJewelleryResponse converts a domain jewellery item to a response DTO
func ToJewelleryResponse(j *inventory.Jewellery) JewelleryResponse {
	return JewelleryResponse{
		ID:           j.ID,
		Number:       j.Number,
		Name:         j.Name,
		CaratID:      j.CaratID,
		Weight:       j.Weight,
		MakingCharge: j.MakingCharge,
		Price:        j.Price,
		Quantity:     j.Quantity,
		Description:  j.Description,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// JewelleryListFilter carries jewellery list query parameters
type JewelleryListFilter struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	CaratID   string `form:"carat_id" binding:"omitempty,uuid"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ToFilter converts the query parameters to a domain filter
func (f JewelleryListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.CaratID != "" {
		filter.Filters["carat_id"] = f.CaratID
	}
	return filter
}

// CreateCaratRequest represents a request to create a carat
type CreateCaratRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=50"`
	Purity string `json:"purity" binding:"max=20"`
}

// UpdateCaratRequest represents a request to update a carat
type UpdateCaratRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=50"`
	Purity *string `json:"purity" binding:"omitempty,max=20"`
}

// CaratResponse represents a carat in API responses
type CaratResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Purity    string    `json:"purity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCaratResponse converts a domain carat to a response DTO
func ToCaratResponse(c *inventory.Carat) CaratResponse {
	return CaratResponse{
		ID:        c.ID,
		Name:      c.Name,
		Purity:    c.Purity,
		CreatedAt: c.CreatedAt,
	}
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
