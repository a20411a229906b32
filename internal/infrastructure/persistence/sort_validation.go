package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PartnerSortFields contains allowed sort fields for customers and vendors
var PartnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"name":       true,
	"phone":      true,
	"status":     true,
}

// DocumentSortFields contains allowed sort fields for invoices and bills
var DocumentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"date":        true,
	"amount":      true,
	"paid_amount": true,
	"status":      true,
}

// VoucherSortFields contains allowed sort fields for vouchers
var VoucherSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"number":     true,
	"date":       true,
	"amount":     true,
}

// StockSortFields contains allowed sort fields for inventory entities
var StockSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"name":       true,
	"quantity":   true,
	"unit_price": true,
}

// ExpenseSortFields contains allowed sort fields for expense records
var ExpenseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"date":       true,
	"amount":     true,
}
