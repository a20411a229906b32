package finance

import (
	"context"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountHeadRepository persists ledger heads
type AccountHeadRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountHead, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*AccountHead, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]AccountHead, error)
	Save(ctx context.Context, head *AccountHead) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ReceiptVoucherRepository persists receipt vouchers
type ReceiptVoucherRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ReceiptVoucher, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReceiptVoucher, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, voucher *ReceiptVoucher) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentVoucherRepository persists payment vouchers
type PaymentVoucherRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentVoucher, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PaymentVoucher, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, voucher *PaymentVoucher) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ExpenseHeadRepository persists expense heads
type ExpenseHeadRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseHead, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]ExpenseHead, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, head *ExpenseHead) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountSubHeads(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// ExpenseSubHeadRepository persists expense sub-heads
type ExpenseSubHeadRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseSubHead, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]ExpenseSubHead, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, subHead *ExpenseSubHead) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// CountDependentExpenses reports how many expense records reference the
	// sub-head; a sub-head with dependents must not be deleted.
	CountDependentExpenses(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

// ExpenseRepository persists expense records
type ExpenseRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Expense, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// Sum totals the filtered expenses; list responses return it next to the page.
	Sum(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (decimal.Decimal, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
