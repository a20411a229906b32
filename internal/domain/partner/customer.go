package partner

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerStatus represents the lifecycle state of a customer or vendor
type PartnerStatus string

const (
	StatusActive   PartnerStatus = "ACTIVE"
	StatusInactive PartnerStatus = "INACTIVE"
)

// IsValid checks whether the status is a supported value
func (s PartnerStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Customer represents a buyer the business issues invoices to.
// Number is the human-readable series number (C-00000123) and is immutable
// after creation.
type Customer struct {
	shared.TenantEntity
	Number      string        `gorm:"type:varchar(30);not null;uniqueIndex:idx_customers_tenant_number,priority:2"`
	Name        string        `gorm:"type:varchar(200);not null"`
	ContactName string        `gorm:"type:varchar(100)"`
	Phone       string        `gorm:"type:varchar(30);index"`
	Email       string        `gorm:"type:varchar(150);index"`
	Address     string        `gorm:"type:varchar(500)"`
	GroupName   string        `gorm:"type:varchar(100);index"`
	Notes       string        `gorm:"type:text"`
	Status      PartnerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with an allocated series number
func NewCustomer(tenantID uuid.UUID, number, name string) (*Customer, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Customer number cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		Name:         name,
		Status:       StatusActive,
	}, nil
}

// Update changes the customer's mutable identity fields
func (c *Customer) Update(name, groupName, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.GroupName = groupName
	c.Notes = notes
	return nil
}

// SetContact sets the customer's contact details
func (c *Customer) SetContact(contactName, phone, email, address string) error {
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	c.ContactName = contactName
	c.Phone = phone
	c.Email = strings.ToLower(email)
	c.Address = address
	return nil
}

// Deactivate marks the customer inactive without deleting history
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
}

// Activate marks the customer active
func (c *Customer) Activate() {
	c.Status = StatusActive
}
