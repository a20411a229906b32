package inventory

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Jewellery is a finished jewellery piece in stock (series J-). Weight is in
// grams; MakingCharge is the labour component added on top of the metal value.
type Jewellery struct {
	shared.TenantEntity
	Number       string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_jewellery_tenant_number,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	CaratID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Weight       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	MakingCharge decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity     int             `gorm:"not null;default:0"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Jewellery) TableName() string {
	return "jewellery_items"
}

// NewJewellery creates a new jewellery item with an allocated series number
func NewJewellery(tenantID uuid.UUID, number, name string, caratID uuid.UUID, weight, price decimal.Decimal) (*Jewellery, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Jewellery number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Jewellery name cannot be empty")
	}
	if caratID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CARAT", "Carat is required")
	}
	if weight.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Jewellery{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		Name:         name,
		CaratID:      caratID,
		Weight:       weight,
		Price:        price,
		MakingCharge: decimal.Zero,
	}, nil
}

// Update changes the jewellery item's mutable fields
func (j *Jewellery) Update(name, description string, caratID uuid.UUID, weight, makingCharge, price decimal.Decimal, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Jewellery name cannot be empty")
	}
	if caratID == uuid.Nil {
		return shared.NewDomainError("INVALID_CARAT", "Carat is required")
	}
	if weight.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight must be positive")
	}
	if makingCharge.IsNegative() || price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Amounts cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	j.Name = name
	j.Description = description
	j.CaratID = caratID
	j.Weight = weight
	j.MakingCharge = makingCharge
	j.Price = price
	j.Quantity = quantity
	return nil
}
