package billing

import (
	"context"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BillService handles vendor bill business operations
type BillService struct {
	billRepo   billing.BillRepository
	vendorRepo partner.VendorRepository
	allocator  numbering.Allocator
}

// NewBillService creates a new BillService
func NewBillService(billRepo billing.BillRepository, vendorRepo partner.VendorRepository, allocator numbering.Allocator) *BillService {
	return &BillService{
		billRepo:   billRepo,
		vendorRepo: vendorRepo,
		allocator:  allocator,
	}
}

func buildBillItems(reqs []BillItemRequest) ([]billing.BillItem, error) {
	items := make([]billing.BillItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := billing.NewBillItem(req.EquipmentID, req.Name, req.Quantity, req.Rate)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Create creates a new bill numbered from the bill's own date
func (s *BillService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	items, err := buildBillItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.Next(ctx, tenantID, numbering.BillSeries, numbering.Day(req.Date))
	if err != nil {
		return nil, err
	}

	bill, err := billing.NewBill(tenantID, number, vendor.ID, vendor.Name, req.Date, items)
	if err != nil {
		return nil, err
	}
	bill.Notes = req.Notes

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a bill with its lines
func (s *BillService) GetByID(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves bills with filtering and pagination
func (s *BillService) List(ctx context.Context, tenantID uuid.UUID, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
	domainFilter := filter.ToFilter()

	bills, err := s.billRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.billRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToBillResponses(bills), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a bill, replacing the full line set when items are present
func (s *BillService) Update(ctx context.Context, tenantID, billID uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	vendorID := bill.VendorID
	vendorName := bill.VendorName
	if req.VendorID != nil && *req.VendorID != bill.VendorID {
		vendor, err := s.vendorRepo.FindByID(ctx, tenantID, *req.VendorID)
		if err != nil {
			return nil, err
		}
		vendorID = vendor.ID
		vendorName = vendor.Name
	}
	date := bill.Date
	if req.Date != nil {
		date = *req.Date
	}
	notes := bill.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := bill.UpdateHeader(vendorID, vendorName, date, notes); err != nil {
		return nil, err
	}

	if req.Items != nil {
		items, err := buildBillItems(req.Items)
		if err != nil {
			return nil, err
		}
		if err := bill.ReplaceItems(items); err != nil {
			return nil, err
		}
		if err := s.billRepo.UpdateWithItems(ctx, bill); err != nil {
			return nil, err
		}
	} else {
		if err := s.billRepo.Update(ctx, bill); err != nil {
			return nil, err
		}
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Cancel marks a bill canceled
func (s *BillService) Cancel(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.Cancel(); err != nil {
		return nil, err
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Delete removes a bill and its lines. Canceled bills are terminal, and
// bills with payments applied stay locked until their payment vouchers
// are deleted.
func (s *BillService) Delete(ctx context.Context, tenantID, billID uuid.UUID) error {
	bill, err := s.billRepo.FindByID(ctx, tenantID, billID)
	if err != nil {
		return err
	}

	if err := bill.CanMutate(); err != nil {
		return err
	}

	return s.billRepo.Delete(ctx, tenantID, billID)
}
