package billing

import (
	"time"

	"github.com/gemledger/backend/internal/domain/billing"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceItemRequest is one sold line in a create/update request
type InvoiceItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
}

// CreateInvoiceRequest represents a request to create a new invoice.
// The series number is allocated server-side; amount is the computed sum of
// line subtotals, never taken from input.
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	Date       time.Time            `json:"date" binding:"required"`
	Notes      string               `json:"notes"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest represents a request to update an invoice. Items, if
// present, replace the full line set.
type UpdateInvoiceRequest struct {
	CustomerID *uuid.UUID           `json:"customer_id"`
	Date       *time.Time           `json:"date"`
	Notes      *string              `json:"notes"`
	Items      []InvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// InvoiceItemResponse is one line in an invoice response
type InvoiceItemResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID           uuid.UUID             `json:"id"`
	Number       string                `json:"number"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	Date         time.Time             `json:"date"`
	Amount       decimal.Decimal       `json:"amount"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Status       string                `json:"status"`
	Notes        string                `json:"notes"`
	Items        []InvoiceItemResponse `json:"items"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=DUE PARTIAL PAID CANCELED"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f InvoiceListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "date"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.CustomerID != "" {
		filter.Filters["customer_id"] = f.CustomerID
	}
	return filter
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Subtotal: item.Subtotal,
		}
	}
	return InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		Date:         inv.Date,
		Amount:       inv.Amount,
		PaidAmount:   inv.PaidAmount,
		Outstanding:  inv.Outstanding(),
		Status:       string(inv.Status),
		Notes:        inv.Notes,
		Items:        items,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// =============================================================================
// Bill DTOs
// =============================================================================

// BillItemRequest is one purchased equipment line in a create/update request
type BillItemRequest struct {
	EquipmentID uuid.UUID       `json:"equipment_id" binding:"required"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// CreateBillRequest represents a request to create a new bill
type CreateBillRequest struct {
	VendorID uuid.UUID         `json:"vendor_id" binding:"required"`
	Date     time.Time         `json:"date" binding:"required"`
	Notes    string            `json:"notes"`
	Items    []BillItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateBillRequest represents a request to update a bill
type UpdateBillRequest struct {
	VendorID *uuid.UUID        `json:"vendor_id"`
	Date     *time.Time        `json:"date"`
	Notes    *string           `json:"notes"`
	Items    []BillItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// BillItemResponse is one line in a bill response
type BillItemResponse struct {
	EquipmentID uuid.UUID       `json:"equipment_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID          uuid.UUID          `json:"id"`
	Number      string             `json:"number"`
	VendorID    uuid.UUID          `json:"vendor_id"`
	VendorName  string             `json:"vendor_name"`
	Date        time.Time          `json:"date"`
	Amount      decimal.Decimal    `json:"amount"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      string             `json:"status"`
	Notes       string             `json:"notes"`
	Items       []BillItemResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// BillListFilter represents filter options for the bill list
type BillListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=DUE PARTIAL PAID CANCELED"`
	VendorID  string `form:"vendor_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f BillListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "date"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	filter.StartDate = parseDay(f.StartDate)
	filter.EndDate = parseDay(f.EndDate)
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.VendorID != "" {
		filter.Filters["vendor_id"] = f.VendorID
	}
	return filter
}

// ToBillResponse converts a domain bill to a response DTO
func ToBillResponse(b *billing.Bill) BillResponse {
	items := make([]BillItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BillItemResponse{
			EquipmentID: item.EquipmentID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Subtotal:    item.Subtotal,
		}
	}
	return BillResponse{
		ID:          b.ID,
		Number:      b.Number,
		VendorID:    b.VendorID,
		VendorName:  b.VendorName,
		Date:        b.Date,
		Amount:      b.Amount,
		PaidAmount:  b.PaidAmount,
		Outstanding: b.Outstanding(),
		Status:      string(b.Status),
		Notes:       b.Notes,
		Items:       items,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBillResponses converts a slice of domain bills
func ToBillResponses(bills []billing.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
