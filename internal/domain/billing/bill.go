package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillItem is a purchased line owned exclusively by one bill.
type BillItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	EquipmentID uuid.UUID       `gorm:"type:uuid;not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BillItem) TableName() string {
	return "bill_items"
}

// NewBillItem creates a validated bill line
func NewBillItem(equipmentID uuid.UUID, name string, quantity int, rate decimal.Decimal) (*BillItem, error) {
	name = strings.TrimSpace(name)
	if equipmentID == uuid.Nil {
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
	return &BillItem{
		ID:          uuid.New(),
		EquipmentID: equipmentID,
		Name:        name,
		Quantity:    quantity,
		Rate:        rate,
		Subtotal:    rate.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Bill is a purchase document received from a vendor (series B<yyyymmdd>-).
// It mirrors Invoice on the payable side: PaidAmount is advanced by payment
// vouchers and Status is always derived.
type Bill struct {
	shared.TenantEntity
	Number     string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_bills_tenant_number,priority:2"`
	VendorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName string          `gorm:"type:varchar(200);not null"`
	Date       time.Time       `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status     DocumentStatus  `gorm:"type:varchar(20);not null;default:'DUE';index"`
	Items      []BillItem      `gorm:"foreignKey:BillID;references:ID"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a new bill from its lines
func NewBill(tenantID uuid.UUID, number string, vendorID uuid.UUID, vendorName string, date time.Time, items []BillItem) (*Bill, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Bill number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor is required")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Bill date is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Bill requires at least one line item")
	}

	b := &Bill{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Number:       number,
		VendorID:     vendorID,
		VendorName:   vendorName,
		Date:         date,
		PaidAmount:   decimal.Zero,
		Status:       StatusDue,
	}
	b.attachItems(items)
	return b, nil
}

func (b *Bill) attachItems(items []BillItem) {
	total := decimal.Zero
	for idx := range items {
		items[idx].BillID = b.ID
		total = total.Add(items[idx].Subtotal)
	}
	b.Items = items
	b.Amount = total
}

// CanMutate reports whether update or delete is allowed
func (b *Bill) CanMutate() error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Bill is canceled and cannot be modified")
	}
	if b.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.ErrDocumentLocked
	}
	return nil
}

// ReplaceItems swaps the full line set and recomputes the total
func (b *Bill) ReplaceItems(items []BillItem) error {
	if err := b.CanMutate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Bill requires at least one line item")
	}
	b.attachItems(items)
	b.Status = DeriveStatus(b.Amount, b.PaidAmount)
	return nil
}

// UpdateHeader changes the bill's non-line fields
func (b *Bill) UpdateHeader(vendorID uuid.UUID, vendorName string, date time.Time, notes string) error {
	if err := b.CanMutate(); err != nil {
		return err
	}
	if vendorID == uuid.Nil || vendorName == "" {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor is required")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Bill date is required")
	}
	b.VendorID = vendorID
	b.VendorName = vendorName
	b.Date = date
	b.Notes = notes
	return nil
}

// Outstanding returns the unpaid remainder
func (b *Bill) Outstanding() decimal.Decimal {
	return b.Amount.Sub(b.PaidAmount)
}

// ApplyPayment records a payment voucher against the bill
func (b *Bill) ApplyPayment(amount decimal.Decimal) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a canceled bill")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(b.Outstanding()) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount, b.Outstanding()))
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.Status = DeriveStatus(b.Amount, b.PaidAmount)
	return nil
}

// ReversePayment unwinds a deleted payment voucher
func (b *Bill) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}
	if amount.GreaterThan(b.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal exceeds paid amount")
	}
	b.PaidAmount = b.PaidAmount.Sub(amount)
	b.Status = DeriveStatus(b.Amount, b.PaidAmount)
	return nil
}

// Cancel marks the bill canceled; only unpaid bills can be canceled
func (b *Bill) Cancel() error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Bill is already canceled")
	}
	if b.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.ErrDocumentLocked
	}
	b.Status = StatusCanceled
	return nil
}
