// internal/middleware/session.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/utils"
)

// SessionRequired admits only the bearer of the session token issued for the
// application named by the :id path parameter.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeySessionInvalid))
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeySessionInvalid))
			c.Abort()
			return
		}

		if claims.ApplicationID != c.Param("id") {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}

		c.Set(utils.ContextKeyApplicationID, claims.ApplicationID)
		c.Next()
	}
}
