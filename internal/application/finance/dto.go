package finance

import (
	"time"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Voucher DTOs
// =============================================================================

// CreateReceiptVoucherRequest represents a request to record a customer
// payment against one invoice
type CreateReceiptVoucherRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Remark    string          `json:"remark" binding:"max=500"`
}

// ReceiptVoucherResponse represents a receipt voucher in API responses
type ReceiptVoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	AccountHeadID uuid.UUID       `json:"account_head_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Remark        string          `json:"remark"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePaymentVoucherRequest represents a request to record a vendor
// payment against one bill
type CreatePaymentVoucherRequest struct {
	BillID uuid.UUID       `json:"bill_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   time.Time       `json:"date" binding:"required"`
	Remark string          `json:"remark" binding:"max=500"`
}

// PaymentVoucherResponse represents a payment voucher in API responses
type PaymentVoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	BillID        uuid.UUID       `json:"bill_id"`
	BillNumber    string          `json:"bill_number"`
	AccountHeadID uuid.UUID       `json:"account_head_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Remark        string          `json:"remark"`
	CreatedAt     time.Time       `json:"created_at"`
}

// VoucherListFilter represents filter options for voucher lists
type VoucherListFilter struct {
	Search    string `form:"search"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f VoucherListFilter) ToFilter() shared.Filter {
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

// ToReceiptVoucherResponse converts a domain receipt voucher
func ToReceiptVoucherResponse(v *finance.ReceiptVoucher) ReceiptVoucherResponse {
	return ReceiptVoucherResponse{
		ID:            v.ID,
		Number:        v.Number,
		CustomerID:    v.CustomerID,
		InvoiceID:     v.InvoiceID,
		InvoiceNumber: v.InvoiceNumber,
		AccountHeadID: v.AccountHeadID,
		Amount:        v.Amount,
		Date:          v.Date,
		Remark:        v.Remark,
		CreatedAt:     v.CreatedAt,
	}
}

// ToReceiptVoucherResponses converts a slice of domain receipt vouchers
func ToReceiptVoucherResponses(vouchers []finance.ReceiptVoucher) []ReceiptVoucherResponse {
	responses := make([]ReceiptVoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = ToReceiptVoucherResponse(&vouchers[i])
	}
	return responses
}

// ToPaymentVoucherResponse converts a domain payment voucher
func ToPaymentVoucherResponse(v *finance.PaymentVoucher) PaymentVoucherResponse {
	return PaymentVoucherResponse{
		ID:            v.ID,
		Number:        v.Number,
		VendorID:      v.VendorID,
		BillID:        v.BillID,
		BillNumber:    v.BillNumber,
		AccountHeadID: v.AccountHeadID,
		Amount:        v.Amount,
		Date:          v.Date,
		Remark:        v.Remark,
		CreatedAt:     v.CreatedAt,
	}
}

// ToPaymentVoucherResponses converts a slice of domain payment vouchers
func ToPaymentVoucherResponses(vouchers []finance.PaymentVoucher) []PaymentVoucherResponse {
	responses := make([]PaymentVoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = ToPaymentVoucherResponse(&vouchers[i])
	}
	return responses
}

// =============================================================================
// Expense DTOs
// =============================================================================

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	SubHeadID uuid.UUID       `json:"sub_head_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Note      string          `json:"note" binding:"max=500"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	SubHeadID *uuid.UUID       `json:"sub_head_id"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      *time.Time       `json:"date"`
	Note      *string          `json:"note" binding:"omitempty,max=500"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	SubHeadID     uuid.UUID       `json:"sub_head_id"`
	AccountHeadID uuid.UUID       `json:"account_head_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Search    string `form:"search"`
	SubHeadID string `form:"sub_head_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the list filter to a domain filter
func (f ExpenseListFilter) ToFilter() shared.Filter {
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
	if f.SubHeadID != "" {
		filter.Filters["sub_head_id"] = f.SubHeadID
	}
	return filter
}

// ExpensePageResponse is a paginated expense list plus the filtered total
type ExpensePageResponse struct {
	shared.Paginated[ExpenseResponse]
	Sum decimal.Decimal `json:"sum"`
}

// ToExpenseResponse converts a domain expense
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		SubHeadID:     e.SubHeadID,
		AccountHeadID: e.AccountHeadID,
		Amount:        e.Amount,
		Date:          e.Date,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ToExpenseResponses converts a slice of domain expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// =============================================================================
// Dimension DTOs
// =============================================================================

// CreateExpenseHeadRequest represents a request to create an expense head
type CreateExpenseHeadRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreateExpenseSubHeadRequest represents a request to create a sub-head
type CreateExpenseSubHeadRequest struct {
	HeadID uuid.UUID `json:"head_id" binding:"required"`
	Name   string    `json:"name" binding:"required,min=1,max=100"`
}

// UpdateDimensionRequest renames a dimension row
type UpdateDimensionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ExpenseHeadResponse represents an expense head in API responses
type ExpenseHeadResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseSubHeadResponse represents an expense sub-head in API responses
type ExpenseSubHeadResponse struct {
	ID        uuid.UUID `json:"id"`
	HeadID    uuid.UUID `json:"head_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountHeadResponse represents an account head in API responses
type AccountHeadResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToExpenseHeadResponse converts a domain expense head
func ToExpenseHeadResponse(h *finance.ExpenseHead) ExpenseHeadResponse {
	return ExpenseHeadResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}

// ToExpenseSubHeadResponse converts a domain expense sub-head
func ToExpenseSubHeadResponse(sh *finance.ExpenseSubHead) ExpenseSubHeadResponse {
	return ExpenseSubHeadResponse{
		ID:        sh.ID,
		HeadID:    sh.HeadID,
		Name:      sh.Name,
		CreatedAt: sh.CreatedAt,
	}
}

// ToAccountHeadResponse converts a domain account head
func ToAccountHeadResponse(h *finance.AccountHead) AccountHeadResponse {
	return AccountHeadResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}
