package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
)

// RequireStaff allows admins and superadmins. Must run after ResolveRole.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).IsStaff() {
			common.ErrorResponse(c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin allows superadmins only
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != domain.RoleSuperAdmin {
			common.ErrorResponse(c, http.StatusForbidden, "superadmin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
