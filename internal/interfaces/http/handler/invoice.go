package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storeops/backoffice/internal/application/admin"
	"github.com/storeops/backoffice/internal/interfaces/http/dto"
	"github.com/storeops/backoffice/internal/interfaces/http/middleware"
)

// InvoiceHandler serves the invoice list and detail endpoints
type InvoiceHandler struct {
	BaseHandler
	list *admin.InvoiceListService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(list *admin.InvoiceListService) *InvoiceHandler {
	return &InvoiceHandler{list: list}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:id", h.Get)
	rg.PATCH("/invoices/:id/sold", h.SetSold)
}

type invoiceListRequest struct {
	dto.ListRequest
	Status    *int  `form:"status" binding:"omitempty,min=-1,max=2"`
	Sold      *bool `form:"sold"`
	Decrypted *bool `form:"decrypted"`
}

// List returns a page of invoices with product details
func (h *InvoiceHandler) List(c *gin.Context) {
	var req invoiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := make(map[string]interface{})
	if req.Status != nil {
		filters["status"] = *req.Status
	}
	if req.Sold != nil {
		filters["sold"] = *req.Sold
	}
	if req.Decrypted != nil {
		filters["decrypted"] = *req.Decrypted
	}

	page, err := h.list.List(c.Request.Context(), admin.ListQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  filters,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	row, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}

type invoiceSoldRequest struct {
	Sold *bool `json:"sold" binding:"required"`
}

// SetSold toggles the sold flag on a single invoice
func (h *InvoiceHandler) SetSold(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	id, err := uuid.Parse(uriReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoiceSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	row, err := h.list.SetSold(c.Request.Context(), id, *req.Sold)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}
