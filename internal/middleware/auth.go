package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/device-access-api/internal/service"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
	"github.com/jmcastellanos/device-access-api/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated user's claims.
const ContextUserKey = "currentUser"

// Auth protects routes by requiring a valid, non-revoked login token. The resolved
// claims are injected into the request context before the handler runs.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid authorization header."))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
