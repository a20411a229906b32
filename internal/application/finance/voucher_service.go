package finance

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceiptVoucherService posts customer payments against invoices. The
// voucher row and the invoice's paid amount always move in one transaction.
type ReceiptVoucherService struct {
	voucherRepo     finance.ReceiptVoucherRepository
	invoiceRepo     billing.InvoiceRepository
	accountHeadRepo finance.AccountHeadRepository
	allocator       numbering.Allocator
	tx              shared.TransactionManager
}

// NewReceiptVoucherService creates a new ReceiptVoucherService
func NewReceiptVoucherService(
	voucherRepo finance.ReceiptVoucherRepository,
	invoiceRepo billing.InvoiceRepository,
	accountHeadRepo finance.AccountHeadRepository,
	allocator numbering.Allocator,
	tx shared.TransactionManager,
) *ReceiptVoucherService {
	return &ReceiptVoucherService{
		voucherRepo:     voucherRepo,
		invoiceRepo:     invoiceRepo,
		accountHeadRepo: accountHeadRepo,
		allocator:       allocator,
		tx:              tx,
	}
}

// Create records a payment. The amount may not exceed the invoice's
// outstanding balance; the Cash account head must be provisioned.
func (s *ReceiptVoucherService) Create(ctx context.Context, tenantID uuid.UUID, req CreateReceiptVoucherRequest) (*ReceiptVoucherResponse, error) {
	head, err := s.accountHeadRepo.FindByName(ctx, tenantID, finance.HeadCash)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrConfigMissing
		}
		return nil, err
	}

	var voucher *finance.ReceiptVoucher
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, req.InvoiceID)
		if err != nil {
			return err
		}

		if err := invoice.ApplyPayment(req.Amount); err != nil {
			return err
		}

		// Allocated inside the transaction so a failed post rolls the
		// counter back with the voucher, leaving no gap in the series.
		number, err := s.allocator.Next(ctx, tenantID, numbering.ReceiptVoucherSeries, numbering.Day(req.Date))
		if err != nil {
			return err
		}

		voucher, err = finance.NewReceiptVoucher(tenantID, number, invoice.CustomerID,
			invoice.ID, invoice.Number, head.ID, req.Amount, req.Date)
		if err != nil {
			return err
		}
		voucher.Remark = req.Remark

		if err := s.voucherRepo.Create(ctx, voucher); err != nil {
			return err
		}
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToReceiptVoucherResponse(voucher)
	return &response, nil
}

// GetByID retrieves a receipt voucher
func (s *ReceiptVoucherService) GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*ReceiptVoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}

	response := ToReceiptVoucherResponse(voucher)
	return &response, nil
}

// List retrieves receipt vouchers with filtering and pagination
func (s *ReceiptVoucherService) List(ctx context.Context, tenantID uuid.UUID, filter VoucherListFilter) (*shared.Paginated[ReceiptVoucherResponse], error) {
	domainFilter := filter.ToFilter()

	vouchers, err := s.voucherRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.voucherRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToReceiptVoucherResponses(vouchers), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Delete removes a receipt voucher and unwinds its payment. This is the only
// path that releases an invoice's payment lock.
func (s *ReceiptVoucherService) Delete(ctx context.Context, tenantID, voucherID uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.FindByID(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}

		invoice, err := s.invoiceRepo.FindByID(ctx, tenantID, voucher.InvoiceID)
		if err != nil {
			return err
		}

		if err := invoice.ReversePayment(voucher.Amount); err != nil {
			return err
		}

		if err := s.voucherRepo.Delete(ctx, tenantID, voucherID); err != nil {
			return err
		}
		return s.invoiceRepo.Update(ctx, invoice)
	})
}

// PaymentVoucherService posts vendor payments against bills. It mirrors
// ReceiptVoucherService on the payable side.
type PaymentVoucherService struct {
	voucherRepo     finance.PaymentVoucherRepository
	billRepo        billing.BillRepository
	accountHeadRepo finance.AccountHeadRepository
	allocator       numbering.Allocator
	tx              shared.TransactionManager
}

// NewPaymentVoucherService creates a new PaymentVoucherService
func NewPaymentVoucherService(
	voucherRepo finance.PaymentVoucherRepository,
	billRepo billing.BillRepository,
	accountHeadRepo finance.AccountHeadRepository,
	allocator numbering.Allocator,
	tx shared.TransactionManager,
) *PaymentVoucherService {
	return &PaymentVoucherService{
		voucherRepo:     voucherRepo,
		billRepo:        billRepo,
		accountHeadRepo: accountHeadRepo,
		allocator:       allocator,
		tx:              tx,
	}
}

// Create records a payment against a bill
func (s *PaymentVoucherService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePaymentVoucherRequest) (*PaymentVoucherResponse, error) {
	head, err := s.accountHeadRepo.FindByName(ctx, tenantID, finance.HeadCash)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrConfigMissing
		}
		return nil, err
	}

	var voucher *finance.PaymentVoucher
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByID(ctx, tenantID, req.BillID)
		if err != nil {
			return err
		}

		if err := bill.ApplyPayment(req.Amount); err != nil {
			return err
		}

		// Allocated inside the transaction so a failed post rolls the
		// counter back with the voucher.
		number, err := s.allocator.Next(ctx, tenantID, numbering.PaymentVoucherSeries, numbering.Day(req.Date))
		if err != nil {
			return err
		}

		voucher, err = finance.NewPaymentVoucher(tenantID, number, bill.VendorID,
			bill.ID, bill.Number, head.ID, req.Amount, req.Date)
		if err != nil {
			return err
		}
		voucher.Remark = req.Remark

		if err := s.voucherRepo.Create(ctx, voucher); err != nil {
			return err
		}
		return s.billRepo.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentVoucherResponse(voucher)
	return &response, nil
}

// GetByID retrieves a payment voucher
func (s *PaymentVoucherService) GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*PaymentVoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentVoucherResponse(voucher)
	return &response, nil
}

// List retrieves payment vouchers with filtering and pagination
func (s *PaymentVoucherService) List(ctx context.Context, tenantID uuid.UUID, filter VoucherListFilter) (*shared.Paginated[PaymentVoucherResponse], error) {
	domainFilter := filter.ToFilter()

	vouchers, err := s.voucherRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.voucherRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToPaymentVoucherResponses(vouchers), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Delete removes a payment voucher and unwinds its payment
func (s *PaymentVoucherService) Delete(ctx context.Context, tenantID, voucherID uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		voucher, err := s.voucherRepo.FindByID(ctx, tenantID, voucherID)
		if err != nil {
			return err
		}

		bill, err := s.billRepo.FindByID(ctx, tenantID, voucher.BillID)
		if err != nil {
			return err
		}

		if err := bill.ReversePayment(voucher.Amount); err != nil {
			return err
		}

		if err := s.voucherRepo.Delete(ctx, tenantID, voucherID); err != nil {
			return err
		}
		return s.billRepo.Update(ctx, bill)
	})
}
