package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CurrencyHandler struct {
	currencies *service.CurrencyService
}

func NewCurrencyHandler(currencies *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

// Rates lists every stored exchange-rate pair.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	rates, err := h.currencies.Rates(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, rates)
}

// RatesByBase lists the stored pairs for one base currency.
func (h *CurrencyHandler) RatesByBase(c *gin.Context) {
	rates, err := h.currencies.RatesByBase(c.Request.Context(), c.Param("base"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, rates)
}

// Rate resolves one from/to pair through the resolver chain.
func (h *CurrencyHandler) Rate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		util.BadRequest(c, "from and to query parameters are required")
		return
	}
	rate, err := h.currencies.GetRate(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, gin.H{"from": from, "to": to, "rate": rate})
}

type convertRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	converted, err := h.currencies.Convert(c.Request.Context(), req.Amount, req.From, req.To)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, gin.H{
		"amount":    req.Amount,
		"from":      req.From,
		"to":        req.To,
		"converted": converted,
	})
}

// Refresh forces an immediate rate refresh outside the schedule.
func (h *CurrencyHandler) Refresh(c *gin.Context) {
	if err := h.currencies.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
