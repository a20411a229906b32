package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Update(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateWithItems(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	args := m.Called(ctx, tenantID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVendorRepository) CountDependentBills(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func newTestBill(t *testing.T, tenantID uuid.UUID) *billing.Bill {
	item, err := billing.NewBillItem(uuid.New(), "Polishing machine", 1, decimal.NewFromInt(200))
	require.NoError(t, err)
	bill, err := billing.NewBill(tenantID, "B20240522-1", uuid.New(), "Karim Traders",
		time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC), []billing.BillItem{*item})
	require.NoError(t, err)
	return bill
}

func TestBillService_Create(t *testing.T) {
	t.Run("numbers the bill from its own date", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		vendorRepo := new(MockVendorRepository)
		allocator := new(MockAllocator)
		service := NewBillService(billRepo, vendorRepo, allocator)

		tenantID := uuid.New()
		vendor, _ := partner.NewVendor(tenantID, "V-00000001", "Karim Traders")
		date := time.Date(2024, 5, 22, 9, 0, 0, 0, time.UTC)

		vendorRepo.On("FindByID", mock.Anything, tenantID, vendor.ID).
			Return(vendor, nil)
		allocator.On("Next", mock.Anything, tenantID, numbering.BillSeries, "20240522").
			Return("B20240522-3", nil)
		billRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Bill")).
			Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateBillRequest{
			VendorID: vendor.ID,
			Date:     date,
			Items: []BillItemRequest{
				{EquipmentID: uuid.New(), Name: "Polishing machine", Quantity: 1, Rate: decimal.NewFromInt(200)},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "B20240522-3", resp.Number)
		assert.Equal(t, "DUE", resp.Status)
		allocator.AssertExpectations(t)
	})
}

func TestBillService_Delete(t *testing.T) {
	t.Run("blocks delete while payments applied", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		vendorRepo := new(MockVendorRepository)
		allocator := new(MockAllocator)
		service := NewBillService(billRepo, vendorRepo, allocator)

		tenantID := uuid.New()
		bill := newTestBill(t, tenantID)
		require.NoError(t, bill.ApplyPayment(decimal.NewFromInt(50)))

		billRepo.On("FindByID", mock.Anything, tenantID, bill.ID).
			Return(bill, nil)

		err := service.Delete(context.Background(), tenantID, bill.ID)

		assert.ErrorIs(t, err, shared.ErrDocumentLocked)
		billRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("rejects delete of canceled bill", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		vendorRepo := new(MockVendorRepository)
		allocator := new(MockAllocator)
		service := NewBillService(billRepo, vendorRepo, allocator)

		tenantID := uuid.New()
		bill := newTestBill(t, tenantID)
		require.NoError(t, bill.Cancel())

		billRepo.On("FindByID", mock.Anything, tenantID, bill.ID).
			Return(bill, nil)

		err := service.Delete(context.Background(), tenantID, bill.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		billRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes unpaid bill", func(t *testing.T) {
		billRepo := new(MockBillRepository)
		vendorRepo := new(MockVendorRepository)
		allocator := new(MockAllocator)
		service := NewBillService(billRepo, vendorRepo, allocator)

		tenantID := uuid.New()
		bill := newTestBill(t, tenantID)

		billRepo.On("FindByID", mock.Anything, tenantID, bill.ID).
			Return(bill, nil)
		billRepo.On("Delete", mock.Anything, tenantID, bill.ID).
			Return(nil)

		err := service.Delete(context.Background(), tenantID, bill.ID)

		assert.NoError(t, err)
		billRepo.AssertExpectations(t)
	})
}
