package handler

import (
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/repository"
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	transactions *service.TransactionService
	pageSize     int
}

func NewTransactionHandler(transactions *service.TransactionService, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TransactionHandler{transactions: transactions, pageSize: pageSize}
}

type createTransactionRequest struct {
	WalletID    string          `json:"wallet_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Tags        []string        `json:"tags"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required"`
}

type updateTransactionRequest struct {
	WalletID    *string          `json:"wallet_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Category    *string          `json:"category"`
	Tags        *[]string        `json:"tags"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tx, err := h.transactions.Create(c.Request.Context(), currentUser(c).ID, service.CreateTransactionInput{
		WalletID:    req.WalletID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Tags:        req.Tags,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, tx)
}

func (h *TransactionHandler) List(c *gin.Context) {
	start, err := queryDate(c, "start")
	if err != nil {
		fail(c, err)
		return
	}
	end, err := queryDate(c, "end")
	if err != nil {
		fail(c, err)
		return
	}

	filter := repository.TransactionFilter{
		WalletID: c.Query("wallet_id"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Start:    start,
		End:      end,
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", h.pageSize),
	}
	page, err := h.transactions.List(c.Request.Context(), currentUser(c).ID, filter)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, page)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.transactions.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tx, err := h.transactions.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), service.UpdateTransactionInput{
		WalletID:    req.WalletID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Tags:        req.Tags,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
