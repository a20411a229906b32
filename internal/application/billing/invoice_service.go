package billing

import (
	"context"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	allocator    numbering.Allocator
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, customerRepo partner.CustomerRepository, allocator numbering.Allocator) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		allocator:    allocator,
	}
}

func buildInvoiceItems(reqs []InvoiceItemRequest) ([]billing.InvoiceItem, error) {
	items := make([]billing.InvoiceItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := billing.NewInvoiceItem(req.ItemID, req.Name, req.Quantity, req.Rate)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Create creates a new invoice. The number is allocated from the invoice's
// own date, so backdated documents join that day's series.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := buildInvoiceItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.Next(ctx, tenantID, numbering.InvoiceSeries, numbering.Day(req.Date))
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(tenantID, number, customer.ID, customer.Name, req.Date, items)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := filter.ToFilter()

	invoices, err := s.invoiceRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.invoiceRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToInvoiceResponses(invoices), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates an invoice. Canceled or payment-locked invoices reject the
// update before anything is persisted. A present item set replaces all
// lines inside the header's transaction.
func (s *InvoiceService) Update(ctx context.Context, tenantID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	customerID := invoice.CustomerID
	customerName := invoice.CustomerName
	if req.CustomerID != nil && *req.CustomerID != invoice.CustomerID {
		customer, err := s.customerRepo.FindByID(ctx, tenantID, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = customer.ID
		customerName = customer.Name
	}
	date := invoice.Date
	if req.Date != nil {
		date = *req.Date
	}
	notes := invoice.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := invoice.UpdateHeader(customerID, customerName, date, notes); err != nil {
		return nil, err
	}

	if req.Items != nil {
		items, err := buildInvoiceItems(req.Items)
		if err != nil {
			return nil, err
		}
		if err := invoice.ReplaceItems(items); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.UpdateWithItems(ctx, invoice); err != nil {
			return nil, err
		}
	} else {
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel marks an invoice canceled
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes an invoice and its lines. Canceled invoices are terminal,
// and invoices with payments applied stay locked until their receipt
// vouchers are deleted.
func (s *InvoiceService) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}

	if err := invoice.CanMutate(); err != nil {
		return err
	}

	return s.invoiceRepo.Delete(ctx, tenantID, invoiceID)
}
