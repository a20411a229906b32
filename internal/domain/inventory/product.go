package inventory

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a general stock item sold on invoices (series P-).
type Product struct {
	shared.TenantEntity
	Number      string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_products_tenant_number,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	Unit        string          `gorm:"type:varchar(20)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an allocated series number
func NewProduct(tenantID uuid.UUID, number, name string, unitPrice decimal.Decimal) (*Product, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Product number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		Name:         name,
		UnitPrice:    unitPrice,
	}, nil
}

// Update changes the product's mutable fields
func (p *Product) Update(name, category, unit, description string, unitPrice decimal.Decimal, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	p.Name = name
	p.Category = category
	p.Unit = unit
	p.Description = description
	p.UnitPrice = unitPrice
	p.Quantity = quantity
	return nil
}
