package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	wallets *service.WalletService
}

func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type createWalletRequest struct {
	Name     string          `json:"name" binding:"required"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type updateWalletRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
}

func (h *WalletHandler) Create(c *gin.Context) {
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	w, err := h.wallets.Create(c.Request.Context(), currentUser(c).ID, service.CreateWalletInput{
		Name:     req.Name,
		Currency: req.Currency,
		Balance:  req.Balance,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, w)
}

func (h *WalletHandler) List(c *gin.Context) {
	ws, err := h.wallets.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, ws)
}

func (h *WalletHandler) Get(c *gin.Context) {
	w, err := h.wallets.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, w)
}

func (h *WalletHandler) Update(c *gin.Context) {
	var req updateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	w, err := h.wallets.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), service.UpdateWalletInput{
		Name:     req.Name,
		Currency: req.Currency,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, w)
}

func (h *WalletHandler) Delete(c *gin.Context) {
	if err := h.wallets.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
