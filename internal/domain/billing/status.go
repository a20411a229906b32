package billing

import "github.com/shopspring/decimal"

// DocumentStatus tracks how much of a payable document has been settled
type DocumentStatus string

const (
	// StatusDue means no payment has been applied yet
	StatusDue DocumentStatus = "DUE"
	// StatusPartial means some but not all of the amount is paid
	StatusPartial DocumentStatus = "PARTIAL"
	// StatusPaid means the full amount is paid
	StatusPaid DocumentStatus = "PAID"
	// StatusCanceled is terminal; no transition leads out of it
	StatusCanceled DocumentStatus = "CANCELED"
)

// IsValid checks whether the status is a supported value
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDue, StatusPartial, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether the document can never change again
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCanceled
}

// DeriveStatus is the single source of truth for payment-state derivation.
// Every mutation path that changes paidAmount must go through it.
func DeriveStatus(amount, paidAmount decimal.Decimal) DocumentStatus {
	switch {
	case paidAmount.IsZero():
		return StatusDue
	case paidAmount.Equal(amount):
		return StatusPaid
	default:
		return StatusPartial
	}
}
