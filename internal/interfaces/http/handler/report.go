package handler

import (
	reportapp "github.com/gemledger/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles aggregate report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the report routes. Reports are read-only and
// open to any authenticated user.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/expense-summary", h.ExpenseSummary)
	reports.GET("/jewellery-summary", h.JewellerySummary)
	reports.GET("/receivables", h.Receivables)
	reports.GET("/payables", h.Payables)
}

// ExpenseSummary returns per-sub-head expense totals
func (h *ReportHandler) ExpenseSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.ExpenseSummary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// JewellerySummary returns per-carat quantity and weight totals
func (h *ReportHandler) JewellerySummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.JewellerySummary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Receivables returns outstanding invoice totals by status
func (h *ReportHandler) Receivables(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.Receivables(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Payables returns outstanding bill totals by status
func (h *ReportHandler) Payables(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter reportapp.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.Payables(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
