package middlewares

import (
	"net/http"

	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequireRole passes when the caller's role is in the accepted set. Each
// protected route declares the roles it accepts; the employer gate is
// RequireRole(user.RoleEmployer, user.RoleAdmin).
func (m *AuthMiddleware) RequireRole(accepted ...user.Role) gin.HandlerFunc {
	acceptedSet := make(map[user.Role]struct{}, len(accepted))

	for _, r := range accepted {
		acceptedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No authentication token, access denied",
			})
			return
		}

		if _, ok := acceptedSet[user.Role(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Employer privileges required.",
			})
			return
		}
		c.Next()
	}
}
