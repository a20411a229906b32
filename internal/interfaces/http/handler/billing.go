package handler

import (
	billingapp "github.com/gemledger/backend/internal/application/billing"
	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles sales invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers the invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mutate := middleware.RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)

	invoices := rg.Group("/billing/invoices")
	invoices.GET("", h.List)
	invoices.GET("/:id", h.Get)
	invoices.POST("", mutate, h.Create)
	invoices.PUT("/:id", mutate, h.Update)
	invoices.POST("/:id/cancel", mutate, h.Cancel)
	invoices.DELETE("/:id", mutate, h.Delete)
}

// Create creates an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Get retrieves an invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List retrieves invoices with filtering and pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates an invoice header and optionally replaces its lines
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel marks an invoice canceled
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete removes an unpaid invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// BillHandler handles vendor bill API endpoints
type BillHandler struct {
	BaseHandler
	billService *billingapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *billingapp.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// RegisterRoutes registers the bill routes
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mutate := middleware.RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)

	bills := rg.Group("/billing/bills")
	bills.GET("", h.List)
	bills.GET("/:id", h.Get)
	bills.POST("", mutate, h.Create)
	bills.PUT("/:id", mutate, h.Update)
	bills.POST("/:id/cancel", mutate, h.Cancel)
	bills.DELETE("/:id", mutate, h.Delete)
}

// Create creates a bill
func (h *BillHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bill)
}

// Get retrieves a bill with its lines
func (h *BillHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// List retrieves bills with filtering and pagination
func (h *BillHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter billingapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.billService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a bill header and optionally replaces its lines
func (h *BillHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billingapp.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// Cancel marks a bill canceled
func (h *BillHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete removes an unpaid bill
func (h *BillHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
