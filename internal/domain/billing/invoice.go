package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem is a sold line owned exclusively by one invoice. Items are
// replaced wholesale on invoice update, so their IDs are not stable across
// updates.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a validated invoice line
func NewInvoiceItem(itemID uuid.UUID, name string, quantity int, rate decimal.Decimal) (*InvoiceItem, error) {
	name = strings.TrimSpace(name)
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Line item reference cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Line item name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Line item rate cannot be negative")
	}
	return &InvoiceItem{
		ID:       uuid.New(),
		ItemID:   itemID,
		Name:     name,
		Quantity: quantity,
		Rate:     rate,
		Subtotal: rate.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Invoice is a sales document issued to a customer (series I<yyyymmdd>-).
// Amount is the sum of its line subtotals; PaidAmount is advanced by receipt
// vouchers and Status is always derived from the two.
type Invoice struct {
	shared.TenantEntity
	Number       string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string          `gorm:"type:varchar(200);not null"`
	Date         time.Time       `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status       DocumentStatus  `gorm:"type:varchar(20);not null;default:'DUE';index"`
	Items        []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice from its lines. At least one line is
// required; the total is computed here, never taken from the caller.
func NewInvoice(tenantID uuid.UUID, number string, customerID uuid.UUID, customerName string, date time.Time, items []InvoiceItem) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Invoice date is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice requires at least one line item")
	}

	inv := &Invoice{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		CustomerID:   customerID,
		CustomerName: customerName,
		Date:         date,
		PaidAmount:   decimal.Zero,
		Status:       StatusDue,
	}
	inv.attachItems(items)
	return inv, nil
}

func (i *Invoice) attachItems(items []InvoiceItem) {
	total := decimal.Zero
	for idx := range items {
		items[idx].InvoiceID = i.ID
		total = total.Add(items[idx].Subtotal)
	}
	i.Items = items
	i.Amount = total
}

// CanMutate reports whether update or delete is allowed. Canceled invoices
// are terminal; invoices with payments applied stay locked until the
// vouchers that paid them are deleted.
func (i *Invoice) CanMutate() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is canceled and cannot be modified")
	}
	if i.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.ErrDocumentLocked
	}
	return nil
}

// ReplaceItems swaps the full line set for a new one and recomputes the
// total. The previous lines are deleted and the new ones inserted by the
// repository inside the same transaction as the parent update.
func (i *Invoice) ReplaceItems(items []InvoiceItem) error {
	if err := i.CanMutate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Invoice requires at least one line item")
	}
	i.attachItems(items)
	i.Status = DeriveStatus(i.Amount, i.PaidAmount)
	return nil
}

// UpdateHeader changes the invoice's non-line fields
func (i *Invoice) UpdateHeader(customerID uuid.UUID, customerName string, date time.Time, notes string) error {
	if err := i.CanMutate(); err != nil {
		return err
	}
	if customerID == uuid.Nil || customerName == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Invoice date is required")
	}
	i.CustomerID = customerID
	i.CustomerName = customerName
	i.Date = date
	i.Notes = notes
	return nil
}

// Outstanding returns the unpaid remainder
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// ApplyPayment records a receipt voucher against the invoice and re-derives
// the status
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot receive payment on a canceled invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.Outstanding()) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount, i.Outstanding()))
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Status = DeriveStatus(i.Amount, i.PaidAmount)
	return nil
}

// ReversePayment unwinds a deleted receipt voucher and re-derives the status
func (i *Invoice) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}
	if amount.GreaterThan(i.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal exceeds paid amount")
	}
	i.PaidAmount = i.PaidAmount.Sub(amount)
	i.Status = DeriveStatus(i.Amount, i.PaidAmount)
	return nil
}

// Cancel marks the invoice canceled. Only unpaid invoices can be canceled;
// the state is terminal.
func (i *Invoice) Cancel() error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already canceled")
	}
	if i.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.ErrDocumentLocked
	}
	i.Status = StatusCanceled
	return nil
}
