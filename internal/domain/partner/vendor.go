package partner

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Vendor represents a supplier the business receives bills from.
// Number is the human-readable series number (VN-00000045).
type Vendor struct {
	shared.TenantEntity
	Number      string        `gorm:"type:varchar(30);not null;uniqueIndex:idx_vendors_tenant_number,priority:2"`
	Name        string        `gorm:"type:varchar(200);not null"`
	ContactName string        `gorm:"type:varchar(100)"`
	Phone       string        `gorm:"type:varchar(30);index"`
	Email       string        `gorm:"type:varchar(150);index"`
	Address     string        `gorm:"type:varchar(500)"`
	Notes       string        `gorm:"type:text"`
	Status      PartnerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with an allocated series number
func NewVendor(tenantID uuid.UUID, number, name string) (*Vendor, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Vendor number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	return &Vendor{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		Name:         name,
		Status:       StatusActive,
	}, nil
}

// Update changes the vendor's mutable identity fields
func (v *Vendor) Update(name, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	v.Name = name
	v.Notes = notes
	return nil
}

// SetContact sets the vendor's contact details
func (v *Vendor) SetContact(contactName, phone, email, address string) error {
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	v.ContactName = contactName
	v.Phone = phone
	v.Email = strings.ToLower(email)
	v.Address = address
	return nil
}

// Deactivate marks the vendor inactive
func (v *Vendor) Deactivate() {
	v.Status = StatusInactive
}
