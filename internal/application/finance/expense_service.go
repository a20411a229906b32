package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/gemledger/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// Cache dimension names. The labels entry is the sub-head list joined with
// head names that the report layer caches; any sub-head write or head rename
// must drop it alongside the raw list.
const (
	dimExpenseHeads    = "expense_heads"
	dimExpenseSubHeads = "expense_sub_heads"
	dimSubHeadLabels   = dimExpenseSubHeads + ":labels"
	dimAccountHeads    = "account_heads"
)

// ExpenseService handles expense record business operations
type ExpenseService struct {
	expenseRepo     finance.ExpenseRepository
	subHeadRepo     finance.ExpenseSubHeadRepository
	accountHeadRepo finance.AccountHeadRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	subHeadRepo finance.ExpenseSubHeadRepository,
	accountHeadRepo finance.AccountHeadRepository,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:     expenseRepo,
		subHeadRepo:     subHeadRepo,
		accountHeadRepo: accountHeadRepo,
	}
}

// Create records an expense under a sub-head. The Expense account head must
// be provisioned for the tenant.
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.subHeadRepo.FindByID(ctx, tenantID, req.SubHeadID); err != nil {
		return nil, err
	}

	head, err := s.accountHeadRepo.FindByName(ctx, tenantID, finance.HeadExpense)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrConfigMissing
		}
		return nil, err
	}

	expense, err := finance.NewExpense(tenantID, req.SubHeadID, head.ID, req.Amount, req.Date, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense
func (s *ExpenseService) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination, plus the sum of
// the whole filtered set next to the page.
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) (*ExpensePageResponse, error) {
	domainFilter := filter.ToFilter()

	expenses, err := s.expenseRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	sum, err := s.expenseRepo.Sum(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return &ExpensePageResponse{
		Paginated: shared.NewPaginated(ToExpenseResponses(expenses), total, domainFilter.Page, domainFilter.PageSize),
		Sum:       sum,
	}, nil
}

// Update updates an expense
func (s *ExpenseService) Update(ctx context.Context, tenantID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	subHeadID := expense.SubHeadID
	if req.SubHeadID != nil && *req.SubHeadID != expense.SubHeadID {
		if _, err := s.subHeadRepo.FindByID(ctx, tenantID, *req.SubHeadID); err != nil {
			return nil, err
		}
		subHeadID = *req.SubHeadID
	}
	amount := expense.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	date := expense.Date
	if req.Date != nil {
		date = *req.Date
	}
	note := expense.Note
	if req.Note != nil {
		note = *req.Note
	}

	if err := expense.Update(subHeadID, amount, date, note); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, tenantID, expenseID)
}

// ExpenseHeadService manages the expense head dimension
type ExpenseHeadService struct {
	headRepo finance.ExpenseHeadRepository
	cache    *cache.DimensionCache
}

// NewExpenseHeadService creates a new ExpenseHeadService
func NewExpenseHeadService(headRepo finance.ExpenseHeadRepository, dimCache *cache.DimensionCache) *ExpenseHeadService {
	return &ExpenseHeadService{headRepo: headRepo, cache: dimCache}
}

// Create creates an expense head
func (s *ExpenseHeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseHeadRequest) (*ExpenseHeadResponse, error) {
	exists, err := s.headRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Expense head with this name already exists")
	}

	head, err := finance.NewExpenseHead(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.headRepo.Save(ctx, head); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseHeads)

	response := ToExpenseHeadResponse(head)
	return &response, nil
}

// List returns all expense heads of the tenant, cache-aside
func (s *ExpenseHeadService) List(ctx context.Context, tenantID uuid.UUID) ([]ExpenseHeadResponse, error) {
	if cached, ok := cache.GetList[ExpenseHeadResponse](ctx, s.cache, tenantID, dimExpenseHeads); ok {
		return cached, nil
	}

	heads, err := s.headRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseHeadResponse, len(heads))
	for i := range heads {
		responses[i] = ToExpenseHeadResponse(&heads[i])
	}
	cache.SetList(ctx, s.cache, tenantID, dimExpenseHeads, responses)
	return responses, nil
}

// Update renames an expense head
func (s *ExpenseHeadService) Update(ctx context.Context, tenantID, headID uuid.UUID, req UpdateDimensionRequest) (*ExpenseHeadResponse, error) {
	head, err := s.headRepo.FindByID(ctx, tenantID, headID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		head.Name = *req.Name
	}
	if req.Description != nil {
		head.Description = *req.Description
	}

	if err := s.headRepo.Save(ctx, head); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseHeads)
	s.cache.Invalidate(ctx, tenantID, dimSubHeadLabels)

	response := ToExpenseHeadResponse(head)
	return &response, nil
}

// Delete removes an expense head unless sub-heads still reference it
func (s *ExpenseHeadService) Delete(ctx context.Context, tenantID, headID uuid.UUID) error {
	dependents, err := s.headRepo.CountSubHeads(ctx, tenantID, headID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("HAS_DEPENDENTS",
			fmt.Sprintf("Expense head has %d sub-heads and cannot be deleted", dependents))
	}

	if err := s.headRepo.Delete(ctx, tenantID, headID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseHeads)
	return nil
}

// ExpenseSubHeadService manages the expense sub-head dimension
type ExpenseSubHeadService struct {
	subHeadRepo finance.ExpenseSubHeadRepository
	headRepo    finance.ExpenseHeadRepository
	cache       *cache.DimensionCache
}

// NewExpenseSubHeadService creates a new ExpenseSubHeadService
func NewExpenseSubHeadService(
	subHeadRepo finance.ExpenseSubHeadRepository,
	headRepo finance.ExpenseHeadRepository,
	dimCache *cache.DimensionCache,
) *ExpenseSubHeadService {
	return &ExpenseSubHeadService{subHeadRepo: subHeadRepo, headRepo: headRepo, cache: dimCache}
}

// Create creates an expense sub-head under an existing head
func (s *ExpenseSubHeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseSubHeadRequest) (*ExpenseSubHeadResponse, error) {
	if _, err := s.headRepo.FindByID(ctx, tenantID, req.HeadID); err != nil {
		return nil, err
	}

	exists, err := s.subHeadRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Expense sub-head with this name already exists")
	}

	subHead, err := finance.NewExpenseSubHead(tenantID, req.HeadID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.subHeadRepo.Save(ctx, subHead); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseSubHeads)
	s.cache.Invalidate(ctx, tenantID, dimSubHeadLabels)

	response := ToExpenseSubHeadResponse(subHead)
	return &response, nil
}

// List returns all expense sub-heads of the tenant, cache-aside
func (s *ExpenseSubHeadService) List(ctx context.Context, tenantID uuid.UUID) ([]ExpenseSubHeadResponse, error) {
	if cached, ok := cache.GetList[ExpenseSubHeadResponse](ctx, s.cache, tenantID, dimExpenseSubHeads); ok {
		return cached, nil
	}

	subHeads, err := s.subHeadRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseSubHeadResponse, len(subHeads))
	for i := range subHeads {
		responses[i] = ToExpenseSubHeadResponse(&subHeads[i])
	}
	cache.SetList(ctx, s.cache, tenantID, dimExpenseSubHeads, responses)
	return responses, nil
}

// Update renames an expense sub-head
func (s *ExpenseSubHeadService) Update(ctx context.Context, tenantID, subHeadID uuid.UUID, req UpdateDimensionRequest) (*ExpenseSubHeadResponse, error) {
	subHead, err := s.subHeadRepo.FindByID(ctx, tenantID, subHeadID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subHead.Name = *req.Name
	}

	if err := s.subHeadRepo.Save(ctx, subHead); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseSubHeads)
	s.cache.Invalidate(ctx, tenantID, dimSubHeadLabels)

	response := ToExpenseSubHeadResponse(subHead)
	return &response, nil
}

// Delete removes a sub-head. The guard reports the dependent expense count
// so the client can explain why the delete is blocked.
func (s *ExpenseSubHeadService) Delete(ctx context.Context, tenantID, subHeadID uuid.UUID) error {
	dependents, err := s.subHeadRepo.CountDependentExpenses(ctx, tenantID, subHeadID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("HAS_DEPENDENTS",
			fmt.Sprintf("Expense sub-head is referenced by %d expense records and cannot be deleted", dependents))
	}

	if err := s.subHeadRepo.Delete(ctx, tenantID, subHeadID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tenantID, dimExpenseSubHeads)
	s.cache.Invalidate(ctx, tenantID, dimSubHeadLabels)
	return nil
}

// AccountHeadService manages the ledger head dimension
type AccountHeadService struct {
	headRepo finance.AccountHeadRepository
	cache    *cache.DimensionCache
}

// NewAccountHeadService creates a new AccountHeadService
func NewAccountHeadService(headRepo finance.AccountHeadRepository, dimCache *cache.DimensionCache) *AccountHeadService {
	return &AccountHeadService{headRepo: headRepo, cache: dimCache}
}

// Create creates an account head
func (s *AccountHeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseHeadRequest) (*AccountHeadResponse, error) {
	head, err := finance.NewAccountHead(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.headRepo.Save(ctx, head); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tenantID, dimAccountHeads)

	response := ToAccountHeadResponse(head)
	return &response, nil
}

// List returns all account heads of the tenant, cache-aside
func (s *AccountHeadService) List(ctx context.Context, tenantID uuid.UUID) ([]AccountHeadResponse, error) {
	if cached, ok := cache.GetList[AccountHeadResponse](ctx, s.cache, tenantID, dimAccountHeads); ok {
		return cached, nil
	}

	heads, err := s.headRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountHeadResponse, len(heads))
	for i := range heads {
		responses[i] = ToAccountHeadResponse(&heads[i])
	}
	cache.SetList(ctx, s.cache, tenantID, dimAccountHeads, responses)
	return responses, nil
}

// Delete removes an account head
func (s *AccountHeadService) Delete(ctx context.Context, tenantID, headID uuid.UUID) error {
	if err := s.headRepo.Delete(ctx, tenantID, headID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tenantID, dimAccountHeads)
	return nil
}
