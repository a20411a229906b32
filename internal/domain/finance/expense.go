package finance

import (
	"strings"
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHead is a top-level expense dimension (Rent, Wages, Utilities)
type ExpenseHead struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_expense_heads_tenant_name,priority:2"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseHead) TableName() string {
	return "expense_heads"
}

// NewExpenseHead creates a new expense head
func NewExpenseHead(tenantID uuid.UUID, name, description string) (*ExpenseHead, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Expense head name cannot be empty")
	}
	return &ExpenseHead{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Description:  description,
	}, nil
}

// ExpenseSubHead belongs to one ExpenseHead and is the dimension expense
// records reference and reports group by.
type ExpenseSubHead struct {
	shared.TenantEntity
	HeadID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_expense_sub_heads_tenant_name,priority:2"`
}

// TableName returns the table name for GORM
func (ExpenseSubHead) TableName() string {
	return "expense_sub_heads"
}

// NewExpenseSubHead creates a new expense sub-head under a head
func NewExpenseSubHead(tenantID, headID uuid.UUID, name string) (*ExpenseSubHead, error) {
	if headID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HEAD", "Parent expense head is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Expense sub-head name cannot be empty")
	}
	return &ExpenseSubHead{
		TenantEntity: shared.NewTenantEntity(tenantID),
		HeadID:       headID,
		Name:         name,
	}, nil
}

// Expense is a single spend record posted under a sub-head
type Expense struct {
	shared.TenantEntity
	SubHeadID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountHeadID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Note          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a validated expense record
func NewExpense(tenantID, subHeadID, accountHeadID uuid.UUID, amount decimal.Decimal, date time.Time, note string) (*Expense, error) {
	if subHeadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUB_HEAD", "Expense sub-head is required")
	}
	if accountHeadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	return &Expense{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		SubHeadID:     subHeadID,
		AccountHeadID: accountHeadID,
		Amount:        amount,
		Date:          date,
		Note:          note,
	}, nil
}

// Update changes the expense's mutable fields
func (e *Expense) Update(subHeadID uuid.UUID, amount decimal.Decimal, date time.Time, note string) error {
	if subHeadID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUB_HEAD", "Expense sub-head is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	e.SubHeadID = subHeadID
	e.Amount = amount
	e.Date = date
	e.Note = note
	return nil
}
