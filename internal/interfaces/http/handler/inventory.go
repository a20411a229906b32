package handler

import (
	inventoryapp "github.com/gemledger/backend/internal/application/inventory"
	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles product, equipment, jewellery and carat endpoints
type InventoryHandler struct {
	BaseHandler
	productService   *inventoryapp.ProductService
	equipmentService *inventoryapp.EquipmentService
	jewelleryService *inventoryapp.JewelleryService
	caratService     *inventoryapp.CaratService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(
	productService *inventoryapp.ProductService,
	equipmentService *inventoryapp.EquipmentService,
	jewelleryService *inventoryapp.JewelleryService,
	caratService *inventoryapp.CaratService,
) *InventoryHandler {
	return &InventoryHandler{
		productService:   productService,
		equipmentService: equipmentService,
		jewelleryService: jewelleryService,
		caratService:     caratService,
	}
}

// RegisterRoutes registers the inventory routes. Carats are a dimension:
// deleting one requires SUPER_ADMIN.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mutate := middleware.RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)
	dimensionDelete := middleware.RequireRoles(identity.RoleSuperAdmin)

	products := rg.Group("/inventory/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("", mutate, h.CreateProduct)
	products.PUT("/:id", mutate, h.UpdateProduct)
	products.DELETE("/:id", mutate, h.DeleteProduct)

	equipment := rg.Group("/inventory/equipment")
	equipment.GET("", h.ListEquipment)
	equipment.GET("/:id", h.GetEquipment)
	equipment.POST("", mutate, h.CreateEquipment)
	equipment.PUT("/:id", mutate, h.UpdateEquipment)
	equipment.DELETE("/:id", mutate, h.DeleteEquipment)

	jewellery := rg.Group("/inventory/jewellery")
	jewellery.GET("", h.ListJewellery)
	jewellery.GET("/:id", h.GetJewellery)
	jewellery.POST("", mutate, h.CreateJewellery)
	jewellery.PUT("/:id", mutate, h.UpdateJewellery)
	jewellery.DELETE("/:id", mutate, h.DeleteJewellery)

	carats := rg.Group("/inventory/carats")
	carats.GET("", h.ListCarats)
	carats.POST("", mutate, h.CreateCarat)
	carats.PUT("/:id", mutate, h.UpdateCarat)
	carats.DELETE("/:id", dimensionDelete, h.DeleteCarat)
}

// CreateProduct creates a product
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetProduct retrieves a product
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ListProducts retrieves products with filtering and pagination
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter inventoryapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.productService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateProduct updates a product
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req inventoryapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// DeleteProduct removes a product
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateEquipment creates equipment
func (h *InventoryHandler) CreateEquipment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	equipment, err := h.equipmentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, equipment)
}

// GetEquipment retrieves equipment
func (h *InventoryHandler) GetEquipment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	equipment, err := h.equipmentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, equipment)
}

// ListEquipment retrieves equipment with filtering and pagination
func (h *InventoryHandler) ListEquipment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter inventoryapp.EquipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.equipmentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateEquipment updates equipment
func (h *InventoryHandler) UpdateEquipment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	var req inventoryapp.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	equipment, err := h.equipmentService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, equipment)
}

// DeleteEquipment removes equipment
func (h *InventoryHandler) DeleteEquipment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	if err := h.equipmentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateJewellery creates a jewellery item
func (h *InventoryHandler) CreateJewellery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateJewelleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.jewelleryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// GetJewellery retrieves a jewellery item
func (h *InventoryHandler) GetJewellery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid jewellery ID")
		return
	}

	item, err := h.jewelleryService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// ListJewellery retrieves jewellery items with filtering and pagination
func (h *InventoryHandler) ListJewellery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter inventoryapp.JewelleryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.jewelleryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateJewellery updates a jewellery item
func (h *InventoryHandler) UpdateJewellery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid jewellery ID")
		return
	}

	var req inventoryapp.UpdateJewelleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.jewelleryService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteJewellery removes a jewellery item
func (h *InventoryHandler) DeleteJewellery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid jewellery ID")
		return
	}

	if err := h.jewelleryService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateCarat creates a carat
func (h *InventoryHandler) CreateCarat(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateCaratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	carat, err := h.caratService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, carat)
}

// ListCarats retrieves all carats of the tenant
func (h *InventoryHandler) ListCarats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	carats, err := h.caratService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, carats)
}

// UpdateCarat updates a carat
func (h *InventoryHandler) UpdateCarat(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid carat ID")
		return
	}

	var req inventoryapp.UpdateCaratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	carat, err := h.caratService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, carat)
}

// DeleteCarat removes a carat
func (h *InventoryHandler) DeleteCarat(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid carat ID")
		return
	}

	if err := h.caratService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
