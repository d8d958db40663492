// Package handler contains the gin HTTP handlers. Handlers bind and
// validate request shapes, call services and translate service errors
// into the response envelope.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/middleware"
	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CurrentUserKey).(*models.User)
}

// fail maps service errors onto the response envelope.
func fail(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		util.Forbidden(c, "you do not have access to this resource")
	case errors.As(err, &ve):
		util.BadRequest(c, ve.Message)
	case errors.Is(err, service.ErrRateNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials):
		util.BadRequest(c, err.Error())
	default:
		util.ServerError(c, "internal error")
	}
}

// queryDate parses an optional ?name=2026-01-31 style query value.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, service.Invalid(name + " must be an ISO date like 2026-01-31")
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
