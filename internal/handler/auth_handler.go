package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RefreshRequest refresh token request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, res)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, res)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	tokens, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, tokens)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.GetCurrentUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  middleware.GetRole(c),
	})
}
