package report

import (
	"context"
	"testing"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/report"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ExpenseTotalsBySubHead(ctx context.Context, filter report.Filter) ([]report.ExpenseAggregateRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.ExpenseAggregateRow), args.Error(1)
}

func (m *MockReportRepository) JewelleryStockByCarat(ctx context.Context, filter report.Filter) ([]report.JewelleryAggregateRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.JewelleryAggregateRow), args.Error(1)
}

func (m *MockReportRepository) InvoiceTotalsByStatus(ctx context.Context, filter report.Filter) ([]report.StatusTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.StatusTotal), args.Error(1)
}

func (m *MockReportRepository) BillTotalsByStatus(ctx context.Context, filter report.Filter) ([]report.StatusTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.StatusTotal), args.Error(1)
}

type MockExpenseSubHeadRepository struct {
	mock.Mock
}

func (m *MockExpenseSubHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseSubHead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseSubHead), args.Error(1)
}

func (m *MockExpenseSubHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseSubHead, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ExpenseSubHead), args.Error(1)
}

func (m *MockExpenseSubHeadRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockExpenseSubHeadRepository) Save(ctx context.Context, subHead *finance.ExpenseSubHead) error {
	args := m.Called(ctx, subHead)
	return args.Error(0)
}

func (m *MockExpenseSubHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockExpenseSubHeadRepository) CountDependentExpenses(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockExpenseHeadRepository struct {
	mock.Mock
}

func (m *MockExpenseHeadRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseHead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseHead), args.Error(1)
}

func (m *MockExpenseHeadRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseHead, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ExpenseHead), args.Error(1)
}

func (m *MockExpenseHeadRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockExpenseHeadRepository) Save(ctx context.Context, head *finance.ExpenseHead) error {
	args := m.Called(ctx, head)
	return args.Error(0)
}

func (m *MockExpenseHeadRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockExpenseHeadRepository) CountSubHeads(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
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

func newReportService(reportRepo report.Repository, subHeadRepo finance.ExpenseSubHeadRepository,
	headRepo finance.ExpenseHeadRepository, caratRepo inventory.CaratRepository) *ReportService {
	return NewReportService(reportRepo, subHeadRepo, headRepo, caratRepo, nil, language.English)
}

func TestReportService_ExpenseSummary(t *testing.T) {
	t.Run("joins labels in memory and orders groups by label", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		subHeadRepo := new(MockExpenseSubHeadRepository)
		headRepo := new(MockExpenseHeadRepository)
		caratRepo := new(MockCaratRepository)
		service := newReportService(reportRepo, subHeadRepo, headRepo, caratRepo)

		tenantID := uuid.New()
		head, err := finance.NewExpenseHead(tenantID, "Workshop", "")
		require.NoError(t, err)
		wages, err := finance.NewExpenseSubHead(tenantID, head.ID, "Wages")
		require.NoError(t, err)
		acid, err := finance.NewExpenseSubHead(tenantID, head.ID, "acid")
		require.NoError(t, err)
		deletedSubHead := uuid.New()

		reportRepo.On("ExpenseTotalsBySubHead", mock.Anything, mock.Anything).Return([]report.ExpenseAggregateRow{
			{SubHeadID: wages.ID, Total: decimal.NewFromInt(900), Count: 3},
			{SubHeadID: deletedSubHead, Total: decimal.NewFromInt(50), Count: 1},
			{SubHeadID: acid.ID, Total: decimal.NewFromInt(120), Count: 2},
		}, nil)
		subHeadRepo.On("FindAll", mock.Anything, tenantID).Return([]finance.ExpenseSubHead{*wages, *acid}, nil)
		headRepo.On("FindAll", mock.Anything, tenantID).Return([]finance.ExpenseHead{*head}, nil)

		response, err := service.ExpenseSummary(context.Background(), tenantID, ReportFilter{})

		require.NoError(t, err)
		require.Len(t, response.Groups, 3)
		// Case-insensitive collation puts "acid" before "Wages"; the group
		// with the deleted sub-head sorts under its empty label.
		assert.Equal(t, "", response.Groups[0].SubHeadName)
		assert.Equal(t, "acid", response.Groups[1].SubHeadName)
		assert.Equal(t, "Wages", response.Groups[2].SubHeadName)
		assert.Equal(t, "Workshop", response.Groups[1].HeadName)
		assert.True(t, response.GrandTotal.Equal(decimal.NewFromInt(1070)))
		assert.Equal(t, int64(6), response.Count)
	})

	t.Run("deleted dimension row keeps the group, drops the label", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		subHeadRepo := new(MockExpenseSubHeadRepository)
		headRepo := new(MockExpenseHeadRepository)
		caratRepo := new(MockCaratRepository)
		service := newReportService(reportRepo, subHeadRepo, headRepo, caratRepo)

		tenantID := uuid.New()
		orphan := uuid.New()
		reportRepo.On("ExpenseTotalsBySubHead", mock.Anything, mock.Anything).Return([]report.ExpenseAggregateRow{
			{SubHeadID: orphan, Total: decimal.NewFromInt(75), Count: 1},
		}, nil)
		subHeadRepo.On("FindAll", mock.Anything, tenantID).Return([]finance.ExpenseSubHead{}, nil)
		headRepo.On("FindAll", mock.Anything, tenantID).Return([]finance.ExpenseHead{}, nil)

		response, err := service.ExpenseSummary(context.Background(), tenantID, ReportFilter{})

		require.NoError(t, err)
		require.Len(t, response.Groups, 1)
		assert.Equal(t, orphan, response.Groups[0].SubHeadID)
		assert.Empty(t, response.Groups[0].SubHeadName)
		assert.Empty(t, response.Groups[0].HeadName)
		assert.True(t, response.GrandTotal.Equal(decimal.NewFromInt(75)))
	})
}

func TestReportService_JewellerySummary(t *testing.T) {
	t.Run("labels stock groups by carat and totals weight", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		subHeadRepo := new(MockExpenseSubHeadRepository)
		headRepo := new(MockExpenseHeadRepository)
		caratRepo := new(MockCaratRepository)
		service := newReportService(reportRepo, subHeadRepo, headRepo, caratRepo)

		tenantID := uuid.New()
		k22, err := inventory.NewCarat(tenantID, "22K", "91.6")
		require.NoError(t, err)
		k18, err := inventory.NewCarat(tenantID, "18K", "75.0")
		require.NoError(t, err)

		reportRepo.On("JewelleryStockByCarat", mock.Anything, mock.Anything).Return([]report.JewelleryAggregateRow{
			{CaratID: k22.ID, Quantity: 5, TotalWeight: decimal.RequireFromString("120.500")},
			{CaratID: k18.ID, Quantity: 2, TotalWeight: decimal.RequireFromString("31.000")},
		}, nil)
		caratRepo.On("FindAll", mock.Anything, tenantID).Return([]inventory.Carat{*k22, *k18}, nil)

		response, err := service.JewellerySummary(context.Background(), tenantID, ReportFilter{})

		require.NoError(t, err)
		require.Len(t, response.Groups, 2)
		assert.Equal(t, "18K", response.Groups[0].CaratName)
		assert.Equal(t, "22K", response.Groups[1].CaratName)
		assert.Equal(t, int64(7), response.Quantity)
		assert.True(t, response.TotalWeight.Equal(decimal.RequireFromString("151.500")))
	})
}

func TestReportService_Receivables(t *testing.T) {
	t.Run("sums per-status totals into grand totals", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		subHeadRepo := new(MockExpenseSubHeadRepository)
		headRepo := new(MockExpenseHeadRepository)
		caratRepo := new(MockCaratRepository)
		service := newReportService(reportRepo, subHeadRepo, headRepo, caratRepo)

		tenantID := uuid.New()
		reportRepo.On("InvoiceTotalsByStatus", mock.Anything, mock.Anything).Return([]report.StatusTotal{
			{Status: "DUE", Count: 2, Amount: decimal.NewFromInt(200), PaidAmount: decimal.Zero, Outstanding: decimal.NewFromInt(200)},
			{Status: "PARTIAL", Count: 1, Amount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(40), Outstanding: decimal.NewFromInt(60)},
		}, nil)

		response, err := service.Receivables(context.Background(), tenantID, ReportFilter{})

		require.NoError(t, err)
		assert.True(t, response.Amount.Equal(decimal.NewFromInt(300)))
		assert.True(t, response.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.True(t, response.Outstanding.Equal(decimal.NewFromInt(260)))
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		reportRepo := new(MockReportRepository)
		subHeadRepo := new(MockExpenseSubHeadRepository)
		headRepo := new(MockExpenseHeadRepository)
		caratRepo := new(MockCaratRepository)
		service := newReportService(reportRepo, subHeadRepo, headRepo, caratRepo)

		reportRepo.On("InvoiceTotalsByStatus", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.Receivables(context.Background(), uuid.New(), ReportFilter{})

		assert.Error(t, err)
	})
}
