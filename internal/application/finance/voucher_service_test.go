package finance

import (
	"context"
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReceiptVoucherRepository struct {
	mock.Mock
}

func (m *MockReceiptVoucherRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ReceiptVoucher, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ReceiptVoucher), args.Error(1)
}

func (m *MockReceiptVoucherRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.ReceiptVoucher, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ReceiptVoucher), args.Error(1)
}

func (m *MockReceiptVoucherRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptVoucherRepository) Create(ctx context.Context, voucher *finance.ReceiptVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockReceiptVoucherRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateWithItems(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockAccountHeadRepository struct {
	mock.Mock
}

func (m *MockAccountHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountHead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*finance.AccountHead, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.AccountHead, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) Save(ctx context.Context, head *finance.AccountHead) error {
	args := m.Called(ctx, head)
	return args.Error(0)
}

func (m *MockAccountHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context, tenantID uuid.UUID, series numbering.Series, day string) (string, error) {
	args := m.Called(ctx, tenantID, series, day)
	return args.String(0), args.Error(1)
}

// MockTransactionManager runs the function inline without a real transaction.
type MockTransactionManager struct{}

func (m *MockTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newPaidInvoice(t *testing.T, tenantID uuid.UUID, amount, paid decimal.Decimal) *billing.Invoice {
	t.Helper()
	item, err := billing.NewInvoiceItem(uuid.New(), "Gold ring", 1, amount)
	require.NoError(t, err)
	invoice, err := billing.NewInvoice(tenantID, "I20240522-7", uuid.New(), "Asha Traders",
		time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC), []billing.InvoiceItem{*item})
	require.NoError(t, err)
	if paid.GreaterThan(decimal.Zero) {
		require.NoError(t, invoice.ApplyPayment(paid))
	}
	return invoice
}

func newCashHead(tenantID uuid.UUID) *finance.AccountHead {
	head, _ := finance.NewAccountHead(tenantID, finance.HeadCash, "")
	return head
}

func TestReceiptVoucherService_Create(t *testing.T) {
	t.Run("posts voucher and moves invoice paid amount together", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		invoice := newPaidInvoice(t, tenantID, decimal.NewFromInt(100), decimal.Zero)
		date := time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC)

		headRepo.On("FindByName", mock.Anything, tenantID, finance.HeadCash).Return(newCashHead(tenantID), nil)
		allocator.On("Next", mock.Anything, tenantID, mock.Anything, "20240523").Return("V20240523-1", nil)
		invoiceRepo.On("FindByID", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
		voucherRepo.On("Create", mock.Anything, mock.AnythingOfType("*finance.ReceiptVoucher")).Return(nil)
		invoiceRepo.On("Update", mock.Anything, invoice).Return(nil)

		response, err := service.Create(context.Background(), tenantID, CreateReceiptVoucherRequest{
			InvoiceID: invoice.ID,
			Amount:    decimal.NewFromInt(40),
			Date:      date,
		})

		require.NoError(t, err)
		assert.Equal(t, "V20240523-1", response.Number)
		assert.Equal(t, invoice.Number, response.InvoiceNumber)
		assert.True(t, invoice.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, billing.StatusPartial, invoice.Status)
		voucherRepo.AssertExpectations(t)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("fails fast when the cash head is not provisioned", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		headRepo.On("FindByName", mock.Anything, tenantID, finance.HeadCash).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), tenantID, CreateReceiptVoucherRequest{
			InvoiceID: uuid.New(),
			Amount:    decimal.NewFromInt(40),
			Date:      time.Now(),
		})

		assert.ErrorIs(t, err, shared.ErrConfigMissing)
		allocator.AssertNotCalled(t, "Next")
		voucherRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects payment exceeding the outstanding balance", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		invoice := newPaidInvoice(t, tenantID, decimal.NewFromInt(100), decimal.NewFromInt(70))

		headRepo.On("FindByName", mock.Anything, tenantID, finance.HeadCash).Return(newCashHead(tenantID), nil)
		invoiceRepo.On("FindByID", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)

		_, err := service.Create(context.Background(), tenantID, CreateReceiptVoucherRequest{
			InvoiceID: invoice.ID,
			Amount:    decimal.NewFromInt(50),
			Date:      time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		allocator.AssertNotCalled(t, "Next")
		voucherRepo.AssertNotCalled(t, "Create")
		invoiceRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects payment on a canceled invoice", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		invoice := newPaidInvoice(t, tenantID, decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, invoice.Cancel())

		headRepo.On("FindByName", mock.Anything, tenantID, finance.HeadCash).Return(newCashHead(tenantID), nil)
		invoiceRepo.On("FindByID", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)

		_, err := service.Create(context.Background(), tenantID, CreateReceiptVoucherRequest{
			InvoiceID: invoice.ID,
			Amount:    decimal.NewFromInt(10),
			Date:      time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		allocator.AssertNotCalled(t, "Next")
		voucherRepo.AssertNotCalled(t, "Create")
	})
}

func TestReceiptVoucherService_Delete(t *testing.T) {
	t.Run("unwinds the payment and releases the invoice", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		invoice := newPaidInvoice(t, tenantID, decimal.NewFromInt(100), decimal.NewFromInt(100))
		require.Equal(t, billing.StatusPaid, invoice.Status)

		voucher, err := finance.NewReceiptVoucher(tenantID, "V20240523-4", invoice.CustomerID,
			invoice.ID, invoice.Number, uuid.New(), decimal.NewFromInt(100),
			time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		voucherRepo.On("FindByID", mock.Anything, tenantID, voucher.ID).Return(voucher, nil)
		invoiceRepo.On("FindByID", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
		voucherRepo.On("Delete", mock.Anything, tenantID, voucher.ID).Return(nil)
		invoiceRepo.On("Update", mock.Anything, invoice).Return(nil)

		err = service.Delete(context.Background(), tenantID, voucher.ID)

		require.NoError(t, err)
		assert.True(t, invoice.PaidAmount.IsZero())
		assert.Equal(t, billing.StatusDue, invoice.Status)
		voucherRepo.AssertExpectations(t)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("leaves the voucher in place when the invoice is missing", func(t *testing.T) {
		voucherRepo := new(MockReceiptVoucherRepository)
		invoiceRepo := new(MockInvoiceRepository)
		headRepo := new(MockAccountHeadRepository)
		allocator := new(MockAllocator)
		service := NewReceiptVoucherService(voucherRepo, invoiceRepo, headRepo, allocator, &MockTransactionManager{})

		tenantID := uuid.New()
		voucher, err := finance.NewReceiptVoucher(tenantID, "V20240523-5", uuid.New(),
			uuid.New(), "I20240522-9", uuid.New(), decimal.NewFromInt(10), time.Now())
		require.NoError(t, err)

		voucherRepo.On("FindByID", mock.Anything, tenantID, voucher.ID).Return(voucher, nil)
		invoiceRepo.On("FindByID", mock.Anything, tenantID, voucher.InvoiceID).Return(nil, shared.ErrNotFound)

		err = service.Delete(context.Background(), tenantID, voucher.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		voucherRepo.AssertNotCalled(t, "Delete")
	})
}
