package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/service"
	"github.com/jmcastellanos/device-access-api/pkg/response"
)

// UserHandler exposes the pre-hashed registration endpoint.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Store godoc
// @Summary Create user
// @Description Create a user, hashing the submitted password
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.CreateUserRequest true "User payload"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /register-hashed [post]
func (h *UserHandler) Store(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(http.StatusUnprocessableEntity))
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}
