// Package middleware holds gin middleware shared by the API routes.
package middleware

import (
	"strings"

	"github.com/ausare-dev/personal-finance-manager/internal/repository"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key holding the authenticated
// *models.User.
const CurrentUserKey = "currentUser"

// Auth validates the bearer token and loads the user onto the
// context. A token may also arrive as ?token= for file downloads.
func Auth(secret string, store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}
		if tokenString == "" {
			util.Unauthorized(c, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(secret, tokenString)
		if err != nil {
			util.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := store.Users().FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			util.Unauthorized(c, "user no longer exists")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
