package inventory

import (
	"context"
	"testing"

	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJewelleryRepository struct {
	mock.Mock
}

func (m *MockJewelleryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Jewellery, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Jewellery), args.Error(1)
}

func (m *MockJewelleryRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Jewellery, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Jewellery), args.Error(1)
}

func (m *MockJewelleryRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJewelleryRepository) Save(ctx context.Context, item *inventory.Jewellery) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockJewelleryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockCaratRepository struct {
	mock.Mock
}

func (m *MockCaratRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Carat, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Carat), args.Error(1)
}

func (m *MockCaratRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]inventory.Carat, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Carat), args.Error(1)
}

func (m *MockCaratRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaratRepository) Save(ctx context.Context, carat *inventory.Carat) error {
	args := m.Called(ctx, carat)
	return args.Error(0)
}

func (m *MockCaratRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCaratRepository) CountDependentJewellery(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context, tenantID uuid.UUID, series numbering.Series, day string) (string, error) {
	args := m.Called(ctx, tenantID, series, day)
	return args.String(0), args.Error(1)
}

func TestJewelleryService_Create(t *testing.T) {
	t.Run("allocates a J- number and stores the item", func(t *testing.T) {
		jewelleryRepo := new(MockJewelleryRepository)
		caratRepo := new(MockCaratRepository)
		allocator := new(MockAllocator)
		service := NewJewelleryService(jewelleryRepo, caratRepo, allocator)

		tenantID := uuid.New()
		carat, err := inventory.NewCarat(tenantID, "22K", "91.6")
		require.NoError(t, err)

		caratRepo.On("FindByID", mock.Anything, tenantID, carat.ID).Return(carat, nil)
		allocator.On("Next", mock.Anything, tenantID, numbering.JewellerySeries, "").Return("J-00000017", nil)
		jewelleryRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Jewellery")).Return(nil)

		response, err := service.Create(context.Background(), tenantID, CreateJewelleryRequest{
			Name:     "Bridal necklace",
			CaratID:  carat.ID,
			Weight:   decimal.RequireFromString("42.500"),
			Price:    decimal.NewFromInt(310000),
			Quantity: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, "J-00000017", response.Number)
		assert.Equal(t, carat.ID, response.CaratID)
		assert.Equal(t, 2, response.Quantity)
		jewelleryRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown carat before allocating a number", func(t *testing.T) {
		jewelleryRepo := new(MockJewelleryRepository)
		caratRepo := new(MockCaratRepository)
		allocator := new(MockAllocator)
		service := NewJewelleryService(jewelleryRepo, caratRepo, allocator)

		tenantID := uuid.New()
		caratID := uuid.New()
		caratRepo.On("FindByID", mock.Anything, tenantID, caratID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), tenantID, CreateJewelleryRequest{
			Name:    "Bridal necklace",
			CaratID: caratID,
			Weight:  decimal.NewFromInt(10),
			Price:   decimal.NewFromInt(1000),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		allocator.AssertNotCalled(t, "Next")
		jewelleryRepo.AssertNotCalled(t, "Save")
	})
}

func TestJewelleryService_Update(t *testing.T) {
	t.Run("switching carat requires the target to exist", func(t *testing.T) {
		jewelleryRepo := new(MockJewelleryRepository)
		caratRepo := new(MockCaratRepository)
		allocator := new(MockAllocator)
		service := NewJewelleryService(jewelleryRepo, caratRepo, allocator)

		tenantID := uuid.New()
		item, err := inventory.NewJewellery(tenantID, "J-00000017", "Bridal necklace",
			uuid.New(), decimal.NewFromInt(42), decimal.NewFromInt(310000))
		require.NoError(t, err)

		otherCarat := uuid.New()
		jewelleryRepo.On("FindByID", mock.Anything, tenantID, item.ID).Return(item, nil)
		caratRepo.On("FindByID", mock.Anything, tenantID, otherCarat).Return(nil, shared.ErrNotFound)

		_, err = service.Update(context.Background(), tenantID, item.ID, UpdateJewelleryRequest{
			CaratID: &otherCarat,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		jewelleryRepo.AssertNotCalled(t, "Save")
	})
}

func TestCaratService_Delete(t *testing.T) {
	t.Run("blocked while jewellery items reference the carat", func(t *testing.T) {
		caratRepo := new(MockCaratRepository)
		service := NewCaratService(caratRepo, nil)

		tenantID := uuid.New()
		caratID := uuid.New()
		caratRepo.On("CountDependentJewellery", mock.Anything, tenantID, caratID).Return(int64(3), nil)

		err := service.Delete(context.Background(), tenantID, caratID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_DEPENDENTS", domainErr.Code)
		caratRepo.AssertNotCalled(t, "Delete")
	})
}
