package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/device-access-api/internal/middleware"
	"github.com/jmcastellanos/device-access-api/internal/models"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func bindError(status int) *appErrors.Error {
	return appErrors.Validation(status, map[string][]string{
		"payload": {"The request payload is malformed."},
	})
}
