package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storeops/backoffice/internal/application/admin"
	"github.com/storeops/backoffice/internal/application/export"
	"github.com/storeops/backoffice/internal/interfaces/http/dto"
	"github.com/storeops/backoffice/internal/interfaces/http/middleware"
)

// ProductHandler serves the product list, detail, and export endpoints
type ProductHandler struct {
	BaseHandler
	list     *admin.ProductListService
	exporter *export.ProductExportService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(list *admin.ProductListService, exporter *export.ProductExportService) *ProductHandler {
	return &ProductHandler{
		list:     list,
		exporter: exporter,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.GET("/products/:id", h.Get)
	rg.GET("/exports/products", h.Export)
}

type productListRequest struct {
	dto.ListRequest
	Active     *bool  `form:"active"`
	HasExpiry  *bool  `form:"has_expiry"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// List returns a page of products
func (h *ProductHandler) List(c *gin.Context) {
	var req productListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := make(map[string]interface{})
	if req.Active != nil {
		filters["active"] = *req.Active
	}
	if req.HasExpiry != nil {
		filters["has_expiry"] = *req.HasExpiry
	}
	if req.CategoryID != "" {
		filters["category_id"] = req.CategoryID
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

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	row, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}

// Export streams the full product catalog as a CSV attachment
func (h *ProductHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("products-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := h.exporter.Export(c.Request.Context(), c.Writer); err != nil {
		// Headers may already be out; the truncated body signals failure.
		c.Status(http.StatusInternalServerError)
		return
	}
}
