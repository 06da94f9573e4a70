package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
)

// JSON sends a success payload as-is with the given status code.
func JSON(c *gin.Context, status int, payload gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// Message sends a bare {"message": ...} body.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusCreated, payload)
}

// Error normalises the error and renders the {"error", "message"} envelope. Errors
// without a label render as a bare {"message": ...} body, matching endpoints whose
// failure contract carries no error field.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")

	if appErr.Label == "" {
		c.JSON(appErr.Status, gin.H{"message": appErr.Message})
		return
	}

	if appErr.Fields != nil {
		c.JSON(appErr.Status, gin.H{"error": appErr.Label, "message": appErr.Fields})
		return
	}

	c.JSON(appErr.Status, gin.H{"error": appErr.Label, "message": appErr.Message})
}
