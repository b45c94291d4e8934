package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	"github.com/gyansetu/gyansetu-backend/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ctxUserID = "userID"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// RoleResolver looks up the effective role of a user
type RoleResolver interface {
	CurrentRole(userID uint64) (domain.Role, error)
}

var (
	errMissingToken = errors.New("missing authorization header")
	errBadHeader    = errors.New("invalid authorization header format")
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errBadHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

func authenticate(c *gin.Context, jwtManager *jwt.Manager) error {
	token, err := BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return err
	}
	claims, err := jwtManager.VerifyToken(token)
	if err != nil {
		return err
	}
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	return nil
}

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, jwtManager); err != nil {
			msg := "Invalid token"
			switch {
			case errors.Is(err, errMissingToken):
				msg = "Missing authorization header"
			case errors.Is(err, errBadHeader):
				msg = "Invalid authorization header format"
			case errors.Is(err, jwt.ErrExpiredToken):
				msg = "Token expired"
			}
			common.ErrorResponse(c, http.StatusUnauthorized, msg, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present; anyone else
// continues as an anonymous visitor
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = authenticate(c, jwtManager)
		c.Next()
	}
}

// ResolveRole loads the effective role of the authenticated user from the
// profile store. A store failure is treated as unauthenticated.
func ResolveRole(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.Next()
			return
		}
		role, err := resolver.CurrentRole(userID)
		if err != nil {
			logger.Warn("role lookup failed for user %d: %v", userID, err)
			common.ErrorResponse(c, http.StatusUnauthorized, common.ErrUnauthorized.Error(), nil)
			c.Abort()
			return
		}
		c.Set(ctxRole, role)
		c.Next()
	}
}

// GetUserID extracts user ID from context; 0 when anonymous
func GetUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// GetEmail extracts the token email from context
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetRole extracts the resolved role from context; empty when anonymous
func GetRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}
