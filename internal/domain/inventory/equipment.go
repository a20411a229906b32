package inventory

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Equipment is a workshop asset purchased through vendor bills (series E-).
type Equipment struct {
	shared.TenantEntity
	Number      string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_equipments_tenant_number,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Model       string          `gorm:"type:varchar(100)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipments"
}

// NewEquipment creates a new equipment item with an allocated series number
func NewEquipment(tenantID uuid.UUID, number, name string, unitPrice decimal.Decimal) (*Equipment, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Equipment number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &Equipment{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		Name:         name,
		UnitPrice:    unitPrice,
	}, nil
}

// Update changes the equipment's mutable fields
func (e *Equipment) Update(name, model, description string, unitPrice decimal.Decimal, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	e.Name = name
	e.Model = model
	e.Description = description
	e.UnitPrice = unitPrice
	e.Quantity = quantity
	return nil
}
