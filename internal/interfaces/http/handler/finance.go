package handler

import (
	financeapp "github.com/gemledger/backend/internal/application/finance"
	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// VoucherHandler handles receipt and payment voucher endpoints
type VoucherHandler struct {
	BaseHandler
	receiptService *financeapp.ReceiptVoucherService
	paymentService *financeapp.PaymentVoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(
	receiptService *financeapp.ReceiptVoucherService,
	paymentService *financeapp.PaymentVoucherService,
) *VoucherHandler {
	return &VoucherHandler{receiptService: receiptService, paymentService: paymentService}
}

// RegisterRoutes registers the voucher routes. Vouchers have no update
// route: a wrong voucher is deleted and re-entered.
func (h *VoucherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mutate := middleware.RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)

	receipts := rg.Group("/finance/receipt-vouchers")
	receipts.GET("", h.ListReceipts)
	receipts.GET("/:id", h.GetReceipt)
	receipts.POST("", mutate, h.CreateReceipt)
	receipts.DELETE("/:id", mutate, h.DeleteReceipt)

	payments := rg.Group("/finance/payment-vouchers")
	payments.GET("", h.ListPayments)
	payments.GET("/:id", h.GetPayment)
	payments.POST("", mutate, h.CreatePayment)
	payments.DELETE("/:id", mutate, h.DeletePayment)
}

// CreateReceipt posts a customer payment against an invoice
func (h *VoucherHandler) CreateReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateReceiptVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	voucher, err := h.receiptService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, voucher)
}

// GetReceipt retrieves a receipt voucher
func (h *VoucherHandler) GetReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.receiptService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ListReceipts retrieves receipt vouchers with filtering and pagination
func (h *VoucherHandler) ListReceipts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.VoucherListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.receiptService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteReceipt removes a receipt voucher and unwinds its payment
func (h *VoucherHandler) DeleteReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreatePayment posts a vendor payment against a bill
func (h *VoucherHandler) CreatePayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreatePaymentVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	voucher, err := h.paymentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, voucher)
}

// GetPayment retrieves a payment voucher
func (h *VoucherHandler) GetPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.paymentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ListPayments retrieves payment vouchers with filtering and pagination
func (h *VoucherHandler) ListPayments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.VoucherListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.paymentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeletePayment removes a payment voucher and unwinds its payment
func (h *VoucherHandler) DeletePayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ExpenseHandler handles expense and expense dimension endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService     *financeapp.ExpenseService
	headService        *financeapp.ExpenseHeadService
	subHeadService     *financeapp.ExpenseSubHeadService
	accountHeadService *financeapp.AccountHeadService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(
	expenseService *financeapp.ExpenseService,
	headService *financeapp.ExpenseHeadService,
	subHeadService *financeapp.ExpenseSubHeadService,
	accountHeadService *financeapp.AccountHeadService,
) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:     expenseService,
		headService:        headService,
		subHeadService:     subHeadService,
		accountHeadService: accountHeadService,
	}
}

// RegisterRoutes registers the expense routes. The heads and sub-heads are
// dimensions: deleting one requires SUPER_ADMIN.
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mutate := middleware.RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)
	dimensionDelete := middleware.RequireRoles(identity.RoleSuperAdmin)

	expenses := rg.Group("/finance/expenses")
	expenses.GET("", h.ListExpenses)
	expenses.GET("/:id", h.GetExpense)
	expenses.POST("", mutate, h.CreateExpense)
	expenses.PUT("/:id", mutate, h.UpdateExpense)
	expenses.DELETE("/:id", mutate, h.DeleteExpense)

	heads := rg.Group("/finance/expense-heads")
	heads.GET("", h.ListHeads)
	heads.POST("", mutate, h.CreateHead)
	heads.PUT("/:id", mutate, h.UpdateHead)
	heads.DELETE("/:id", dimensionDelete, h.DeleteHead)

	subHeads := rg.Group("/finance/expense-sub-heads")
	subHeads.GET("", h.ListSubHeads)
	subHeads.POST("", mutate, h.CreateSubHead)
	subHeads.PUT("/:id", mutate, h.UpdateSubHead)
	subHeads.DELETE("/:id", dimensionDelete, h.DeleteSubHead)

	accountHeads := rg.Group("/finance/account-heads")
	accountHeads.GET("", h.ListAccountHeads)
	accountHeads.POST("", mutate, h.CreateAccountHead)
	accountHeads.DELETE("/:id", dimensionDelete, h.DeleteAccountHead)
}

// CreateExpense records an expense
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetExpense retrieves an expense
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// ListExpenses retrieves expenses with the filtered sum next to the page
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.expenseService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, page)
}

// UpdateExpense updates an expense
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// DeleteExpense removes an expense
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateHead creates an expense head
func (h *ExpenseHandler) CreateHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateExpenseHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	head, err := h.headService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, head)
}

// ListHeads retrieves all expense heads of the tenant
func (h *ExpenseHandler) ListHeads(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	heads, err := h.headService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, heads)
}

// UpdateHead renames an expense head
func (h *ExpenseHandler) UpdateHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense head ID")
		return
	}

	var req financeapp.UpdateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	head, err := h.headService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, head)
}

// DeleteHead removes an expense head
func (h *ExpenseHandler) DeleteHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense head ID")
		return
	}

	if err := h.headService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSubHead creates an expense sub-head
func (h *ExpenseHandler) CreateSubHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateExpenseSubHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subHead, err := h.subHeadService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, subHead)
}

// ListSubHeads retrieves all expense sub-heads of the tenant
func (h *ExpenseHandler) ListSubHeads(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	subHeads, err := h.subHeadService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, subHeads)
}

// UpdateSubHead renames an expense sub-head
func (h *ExpenseHandler) UpdateSubHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense sub-head ID")
		return
	}

	var req financeapp.UpdateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subHead, err := h.subHeadService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, subHead)
}

// DeleteSubHead removes an expense sub-head
func (h *ExpenseHandler) DeleteSubHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense sub-head ID")
		return
	}

	if err := h.subHeadService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateAccountHead creates an account head
func (h *ExpenseHandler) CreateAccountHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateExpenseHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	head, err := h.accountHeadService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, head)
}

// ListAccountHeads retrieves all account heads of the tenant
func (h *ExpenseHandler) ListAccountHeads(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	heads, err := h.accountHeadService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, heads)
}

// DeleteAccountHead removes an account head
func (h *ExpenseHandler) DeleteAccountHead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account head ID")
		return
	}

	if err := h.accountHeadService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
