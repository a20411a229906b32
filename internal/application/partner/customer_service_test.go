package partner

import (
	"context"
	"testing"

	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/partner"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error) {
	args := m.Called(ctx, tenantID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountDependentInvoices(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockAllocator is a mock implementation of numbering.Allocator
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context, tenantID uuid.UUID, series numbering.Series, day string) (string, error) {
	args := m.Called(ctx, tenantID, series, day)
	return args.String(0), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

func TestCustomerService_Create(t *testing.T) {
	t.Run("allocates number and saves customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()

		allocator.On("Next", mock.Anything, tenantID, numbering.CustomerSeries, "").
			Return("C-00000042", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).
			Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name: "Asha Jewellers",
		})

		assert.NoError(t, err)
		assert.Equal(t, "C-00000042", resp.Number)
		assert.Equal(t, "ACTIVE", resp.Status)
		repo.AssertExpectations(t)
		allocator.AssertExpectations(t)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()

		repo.On("ExistsByPhone", mock.Anything, tenantID, "9990001111").
			Return(true, nil)

		resp, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name:  "Asha Jewellers",
			Phone: "9990001111",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		allocator.AssertNotCalled(t, "Next")
		repo.AssertNotCalled(t, "Save")
	})
}

func TestCustomerService_Update(t *testing.T) {
	t.Run("keeps number immutable", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()
		existing, _ := partner.NewCustomer(tenantID, "C-00000007", "Old Name")

		repo.On("FindByID", mock.Anything, tenantID, existing.ID).
			Return(existing, nil)
		repo.On("Save", mock.Anything, existing).
			Return(nil)

		newName := "New Name"
		resp, err := service.Update(context.Background(), tenantID, existing.ID, UpdateCustomerRequest{
			Name: &newName,
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.Equal(t, "C-00000007", resp.Number)
		repo.AssertExpectations(t)
	})

	t.Run("deactivates via status", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()
		existing, _ := partner.NewCustomer(tenantID, "C-00000007", "Asha Jewellers")

		repo.On("FindByID", mock.Anything, tenantID, existing.ID).
			Return(existing, nil)
		repo.On("Save", mock.Anything, existing).
			Return(nil)

		status := "INACTIVE"
		resp, err := service.Update(context.Background(), tenantID, existing.ID, UpdateCustomerRequest{
			Status: &status,
		})

		assert.NoError(t, err)
		assert.Equal(t, "INACTIVE", resp.Status)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("blocks delete when invoices reference the customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()
		customerID := uuid.New()

		repo.On("CountDependentInvoices", mock.Anything, tenantID, customerID).
			Return(int64(2), nil)

		err := service.Delete(context.Background(), tenantID, customerID)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_DEPENDENTS", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes unreferenced customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()
		customerID := uuid.New()

		repo.On("CountDependentInvoices", mock.Anything, tenantID, customerID).
			Return(int64(0), nil)
		repo.On("Delete", mock.Anything, tenantID, customerID).
			Return(nil)

		err := service.Delete(context.Background(), tenantID, customerID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestCustomerService_List(t *testing.T) {
	t.Run("returns paginated responses", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		allocator := new(MockAllocator)
		service := NewCustomerService(repo, allocator)

		tenantID := uuid.New()
		c1, _ := partner.NewCustomer(tenantID, "C-00000001", "First")
		c2, _ := partner.NewCustomer(tenantID, "C-00000002", "Second")

		repo.On("FindAll", mock.Anything, tenantID, mock.AnythingOfType("shared.Filter")).
			Return([]partner.Customer{*c1, *c2}, nil)
		repo.On("Count", mock.Anything, tenantID, mock.AnythingOfType("shared.Filter")).
			Return(int64(2), nil)

		page, err := service.List(context.Background(), tenantID, CustomerListFilter{})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 1, page.Page)
	})
}
