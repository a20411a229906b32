package inventory

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Carat is a purity dimension referenced by jewellery items and used to
// label grouped stock reports. It is never mutated by the reporting path.
type Carat struct {
	shared.TenantEntity
	Name   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_carats_tenant_name,priority:2"`
	Purity string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Carat) TableName() string {
	return "carats"
}

// NewCarat creates a new carat dimension row
func NewCarat(tenantID uuid.UUID, name, purity string) (*Carat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Carat name cannot be empty")
	}
	return &Carat{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Purity:       purity,
	}, nil
}

// Update changes the carat's fields
func (c *Carat) Update(name, purity string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Carat name cannot be empty")
	}
	c.Name = name
	c.Purity = purity
	return nil
}
