package finance

import (
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptVoucher records money received from a customer against one invoice
// (series V<yyyymmdd>-). Creating it advances the invoice's paid amount;
// deleting it unwinds that advance. Both sides move in one transaction.
type ReceiptVoucher struct {
	shared.TenantEntity
	Number        string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_receipt_vouchers_tenant_number,priority:2"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(30);not null"`
	AccountHeadID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Remark        string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReceiptVoucher) TableName() string {
	return "receipt_vouchers"
}

// NewReceiptVoucher creates a validated receipt voucher
func NewReceiptVoucher(tenantID uuid.UUID, number string, customerID, invoiceID uuid.UUID, invoiceNumber string, accountHeadID uuid.UUID, amount decimal.Decimal, date time.Time) (*ReceiptVoucher, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Voucher number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if invoiceID == uuid.Nil || invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice reference is required")
	}
	if accountHeadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Voucher date is required")
	}
	return &ReceiptVoucher{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		Number:        number,
		CustomerID:    customerID,
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		AccountHeadID: accountHeadID,
		Amount:        amount,
		Date:          date,
	}, nil
}
