package handler

import (
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type createGoalRequest struct {
	Name          string          `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      time.Time       `json:"deadline" binding:"required"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
}

type updateGoalRequest struct {
	Name          *string          `json:"name"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time       `json:"deadline"`
	InterestRate  *decimal.Decimal `json:"interest_rate"`
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	g, err := h.goals.Create(c.Request.Context(), currentUser(c).ID, service.CreateGoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		InterestRate:  req.InterestRate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, g)
}

// List returns each goal with its progress projection.
func (h *GoalHandler) List(c *gin.Context) {
	gs, err := h.goals.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, gs)
}

func (h *GoalHandler) Get(c *gin.Context) {
	g, err := h.goals.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, g)
}

func (h *GoalHandler) Update(c *gin.Context) {
	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	g, err := h.goals.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), service.UpdateGoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		InterestRate:  req.InterestRate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, g)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.goals.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, nil)
}
