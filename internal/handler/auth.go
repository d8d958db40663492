package handler

import (
	"github.com/ausare-dev/personal-finance-manager/internal/config"
	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
	jwt  config.JWTConfig
}

func NewAuthHandler(auth *service.AuthService, jwt config.JWTConfig) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwt}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := util.GenerateToken(h.jwt.Secret, h.jwt.Issuer, user.ID, h.jwt.ExpireHours)
	if err != nil {
		fail(c, err)
		return
	}
	util.Created(c, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := util.GenerateToken(h.jwt.Secret, h.jwt.Issuer, user.ID, h.jwt.ExpireHours)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	util.Success(c, currentUser(c))
}
