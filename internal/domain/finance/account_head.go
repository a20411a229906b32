package finance

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Well-known ledger heads the system posts against. Voucher and expense
// creation requires the matching row to be provisioned; its absence is a
// configuration error, not a validation failure.
const (
	HeadCash               = "Cash"
	HeadAccountsReceivable = "Accounts Receivable"
	HeadAccountsPayable    = "Accounts Payable"
	HeadExpense            = "Expense"
)

// AccountHead is a ledger dimension row
type AccountHead struct {
	shared.TenantEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_account_heads_tenant_name,priority:2"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AccountHead) TableName() string {
	return "account_heads"
}

// NewAccountHead creates a new account head
func NewAccountHead(tenantID uuid.UUID, name, description string) (*AccountHead, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account head name cannot be empty")
	}
	return &AccountHead{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Description:  description,
	}, nil
}
