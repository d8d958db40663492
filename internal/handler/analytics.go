package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	o, err := h.analytics.Overview(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, o)
}

func (h *AnalyticsHandler) IncomeExpense(c *gin.Context) {
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
	res, err := h.analytics.IncomeExpense(c.Request.Context(), currentUser(c).ID, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, res)
}

func (h *AnalyticsHandler) ByCategory(c *gin.Context) {
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
	rows, err := h.analytics.ByCategory(c.Request.Context(), currentUser(c).ID, c.Query("type"), start, end)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, rows)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
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
	groupBy := c.DefaultQuery("group_by", "day")
	points, err := h.analytics.Trends(c.Request.Context(), currentUser(c).ID, start, end, groupBy)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, points)
}
