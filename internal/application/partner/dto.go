package partner

import (
	"time"

	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer.
// The series number is allocated server-side and never accepted from input.
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email,max=150"`
	Address     string `json:"address" binding:"max=500"`
	GroupName   string `json:"group_name" binding:"max=100"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email,max=150"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	GroupName   *string `json:"group_name" binding:"omitempty,max=100"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	GroupName   string    `json:"group_name"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	GroupName string `form:"group_name"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f CustomerListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.GroupName != "" {
		filter.Filters["group_name"] = f.GroupName
	}
	return filter
}

// parseDay parses a yyyy-mm-dd query value; malformed input is rejected by
// binding before it gets here.
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

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Number:      c.Number,
		Name:        c.Name,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		GroupName:   c.GroupName,
		Notes:       c.Notes,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// =============================================================================
// Vendor DTOs
// =============================================================================

// CreateVendorRequest represents a request to create a new vendor
type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email,max=150"`
	Address     string `json:"address" binding:"max=500"`
	Notes       string `json:"notes"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email,max=150"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorListFilter represents filter options for the vendor list
type VendorListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f VendorListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID,
		Number:      v.Number,
		Name:        v.Name,
		ContactName: v.ContactName,
		Phone:       v.Phone,
		Email:       v.Email,
		Address:     v.Address,
		Notes:       v.Notes,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToVendorResponses converts a slice of domain vendors
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses
}
