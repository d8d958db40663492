package handler

import (
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvestmentHandler struct {
	investments *service.InvestmentService
}

func NewInvestmentHandler(investments *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investments: investments}
}

type createInvestmentRequest struct {
	AssetName     string          `json:"asset_name" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	CurrentPrice  decimal.Decimal `json:"current_price" binding:"required"`
	PurchaseDate  time.Time       `json:"purchase_date" binding:"required"`
}

type updateInvestmentRequest struct {
	AssetName     *string          `json:"asset_name"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
	PurchaseDate  *time.Time       `json:"purchase_date"`
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	inv, err := h.investments.Create(c.Request.Context(), currentUser(c).ID, service.CreateInvestmentInput{
		AssetName:     req.AssetName,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  req.PurchaseDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, inv)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	invs, err := h.investments.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, invs)
}

// Portfolio returns the aggregate across all holdings.
func (h *InvestmentHandler) Portfolio(c *gin.Context) {
	p, err := h.investments.Portfolio(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, p)
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	inv, err := h.investments.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, inv)
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	var req updateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	inv, err := h.investments.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), service.UpdateInvestmentInput{
		AssetName:     req.AssetName,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  req.PurchaseDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, inv)
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	if err := h.investments.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
