package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetHandler struct {
	budgets *service.BudgetService
}

func NewBudgetHandler(budgets *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

type createBudgetRequest struct {
	Category string          `json:"category" binding:"required"`
	Limit    decimal.Decimal `json:"limit" binding:"required"`
	Period   string          `json:"period"`
}

type updateBudgetRequest struct {
	Category *string          `json:"category"`
	Limit    *decimal.Decimal `json:"limit"`
	Period   *string          `json:"period"`
}

func (h *BudgetHandler) Create(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	b, err := h.budgets.Create(c.Request.Context(), currentUser(c).ID, service.CreateBudgetInput{
		Category: req.Category,
		Limit:    req.Limit,
		Period:   req.Period,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, b)
}

// List returns each budget with its usage over the active period.
func (h *BudgetHandler) List(c *gin.Context) {
	bs, err := h.budgets.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, bs)
}

func (h *BudgetHandler) Get(c *gin.Context) {
	b, err := h.budgets.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, b)
}

func (h *BudgetHandler) Update(c *gin.Context) {
	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	b, err := h.budgets.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), service.UpdateBudgetInput{
		Category: req.Category,
		Limit:    req.Limit,
		Period:   req.Period,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, b)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.budgets.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
