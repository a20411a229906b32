package partner

import (
	"context"
	"fmt"

	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	allocator  numbering.Allocator
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, allocator numbering.Allocator) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		allocator:  allocator,
	}
}

// Create creates a new vendor with a freshly allocated series number
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	if req.Phone != "" {
		exists, err := s.vendorRepo.ExistsByPhone(ctx, tenantID, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this phone already exists")
		}
	}

	number, err := s.allocator.Next(ctx, tenantID, numbering.VendorSeries, "")
	if err != nil {
		return nil, err
	}

	vendor, err := partner.NewVendor(tenantID, number, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		if err := vendor.Update(req.Name, req.Notes); err != nil {
			return nil, err
		}
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := vendor.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByNumber retrieves a vendor by its series number
func (s *VendorService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter VendorListFilter) (*shared.Paginated[VendorResponse], error) {
	domainFilter := filter.ToFilter()

	vendors, err := s.vendorRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.vendorRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToVendorResponses(vendors), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a vendor
func (s *VendorService) Update(ctx context.Context, tenantID, vendorID uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	name := vendor.Name
	if req.Name != nil {
		name = *req.Name
	}
	notes := vendor.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := vendor.Update(name, notes); err != nil {
		return nil, err
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil || req.Address != nil {
		contactName := vendor.ContactName
		phone := vendor.Phone
		email := vendor.Email
		address := vendor.Address

		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			if *req.Phone != "" && *req.Phone != vendor.Phone {
				exists, err := s.vendorRepo.ExistsByPhone(ctx, tenantID, *req.Phone)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this phone already exists")
				}
			}
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := vendor.SetContact(contactName, phone, email, address); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		switch partner.PartnerStatus(*req.Status) {
		case partner.StatusActive:
			vendor.Status = partner.StatusActive
		case partner.StatusInactive:
			vendor.Deactivate()
		}
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete removes a vendor. Vendors referenced by bills cannot be deleted.
func (s *VendorService) Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error {
	dependents, err := s.vendorRepo.CountDependentBills(ctx, tenantID, vendorID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("HAS_DEPENDENTS",
			fmt.Sprintf("Vendor has %d bills and cannot be deleted", dependents))
	}
	return s.vendorRepo.Delete(ctx, tenantID, vendorID)
}
