package partner

import (
	"context"
	"fmt"

	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	allocator    numbering.Allocator
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, allocator numbering.Allocator) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		allocator:    allocator,
	}
}

// Create creates a new customer with a freshly allocated series number
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, tenantID, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	if req.Email != "" {
		exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
		}
	}

	number, err := s.allocator.Next(ctx, tenantID, numbering.CustomerSeries, "")
	if err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(tenantID, number, req.Name)
	if err != nil {
		return nil, err
	}

	if req.GroupName != "" || req.Notes != "" {
		if err := customer.Update(req.Name, req.GroupName, req.Notes); err != nil {
			return nil, err
		}
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := customer.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByNumber retrieves a customer by its series number
func (s *CustomerService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	domainFilter := filter.ToFilter()

	customers, err := s.customerRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.customerRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCustomerResponses(customers), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a customer. The series number is immutable and is never
// touched here.
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	groupName := customer.GroupName
	if req.GroupName != nil {
		groupName = *req.GroupName
	}
	notes := customer.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := customer.Update(name, groupName, notes); err != nil {
		return nil, err
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil || req.Address != nil {
		contactName := customer.ContactName
		phone := customer.Phone
		email := customer.Email
		address := customer.Address

		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			if *req.Phone != "" && *req.Phone != customer.Phone {
				exists, err := s.customerRepo.ExistsByPhone(ctx, tenantID, *req.Phone)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
				}
			}
			phone = *req.Phone
		}
		if req.Email != nil {
			if *req.Email != "" && *req.Email != customer.Email {
				exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, *req.Email)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
				}
			}
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := customer.SetContact(contactName, phone, email, address); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		switch partner.PartnerStatus(*req.Status) {
		case partner.StatusActive:
			customer.Activate()
		case partner.StatusInactive:
			customer.Deactivate()
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer. Customers referenced by invoices cannot be
// deleted; deactivate them instead.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	dependents, err := s.customerRepo.CountDependentInvoices(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("HAS_DEPENDENTS",
			fmt.Sprintf("Customer has %d invoices and cannot be deleted", dependents))
	}
	return s.customerRepo.Delete(ctx, tenantID, customerID)
}
