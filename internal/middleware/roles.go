package middleware

import (
	"net/http" // HTTP status codes

	"shop_system/internal/domain" // Role type
	"shop_system/internal/utils"  // Response helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoles allows the request through only when the authenticated
// user's role is in the allow-list. The role comes from the verified
// token claims, so no database read happens here.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole") // Role set by the JWT middleware
		if !exists {
			// No authenticated user on this request
			utils.AbortWithError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}
		role, ok := roleVal.(domain.Role) // Enumerated role from the claims
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}
		// Check the role against the allow-list
		for _, a := range allowed {
			if role == a {
				c.Next() // Role permitted, proceed
				return
			}
		}
		// Wrong role for this route
		utils.AbortWithError(c, http.StatusForbidden, "Access denied: Insufficient permissions")
	}
}
