package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/backoffice/internal/application/admin"
	"github.com/storeops/backoffice/internal/interfaces/http/dto"
	"github.com/storeops/backoffice/internal/interfaces/http/middleware"
)

// BalanceHandler serves the balance list and detail endpoints
type BalanceHandler struct {
	BaseHandler
	list *admin.BalanceListService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(list *admin.BalanceListService) *BalanceHandler {
	return &BalanceHandler{list: list}
}

// RegisterRoutes registers balance routes
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balances", h.List)
	rg.GET("/balances/:id", h.Get)
	rg.PATCH("/balances/:id/balance", h.SetAmount)
}

type balanceListRequest struct {
	dto.ListRequest
	HasAddress  *bool  `form:"has_address"`
	CreatedByID string `form:"created_by_id" binding:"omitempty,uuid"`
}

// List returns a page of balances
func (h *BalanceHandler) List(c *gin.Context) {
	var req balanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := make(map[string]interface{})
	if req.HasAddress != nil {
		filters["has_address"] = *req.HasAddress
	}
	if req.CreatedByID != "" {
		filters["created_by_id"] = req.CreatedByID
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

// Get returns a single balance by ID
func (h *BalanceHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid balance ID")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid balance ID")
		return
	}

	row, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}

type balanceAmountRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// SetAmount overwrites the amount on a single balance
func (h *BalanceHandler) SetAmount(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid balance ID")
		return
	}
	id, err := uuid.Parse(uriReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid balance ID")
		return
	}

	var req balanceAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	row, err := h.list.SetAmount(c.Request.Context(), id, *req.Balance)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}
