package finance

import (
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentVoucher records money paid to a vendor against one bill
// (series PV<yyyymmdd>-). It is the payable-side mirror of ReceiptVoucher.
type PaymentVoucher struct {
	shared.TenantEntity
	Number        string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_payment_vouchers_tenant_number,priority:2"`
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillNumber    string          `gorm:"type:varchar(30);not null"`
	AccountHeadID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Remark        string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentVoucher) TableName() string {
	return "payment_vouchers"
}

// NewPaymentVoucher creates a validated payment voucher
func NewPaymentVoucher(tenantID uuid.UUID, number string, vendorID, billID uuid.UUID, billNumber string, accountHeadID uuid.UUID, amount decimal.Decimal, date time.Time) (*PaymentVoucher, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Voucher number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor is required")
	}
	if billID == uuid.Nil || billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill reference is required")
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
	return &PaymentVoucher{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		Number:        number,
		VendorID:      vendorID,
		BillID:        billID,
		BillNumber:    billNumber,
		AccountHeadID: accountHeadID,
		Amount:        amount,
		Date:          date,
	}, nil
}
