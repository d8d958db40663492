package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

type EducationHandler struct {
	education *service.EducationService
}

func NewEducationHandler(education *service.EducationService) *EducationHandler {
	return &EducationHandler{education: education}
}

func (h *EducationHandler) Articles(c *gin.Context) {
	articles, err := h.education.Articles(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, articles)
}

// Article returns one article; each access bumps its read counter.
func (h *EducationHandler) Article(c *gin.Context) {
	a, err := h.education.Article(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, a)
}

func (h *EducationHandler) Categories(c *gin.Context) {
	cats, err := h.education.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, cats)
}
