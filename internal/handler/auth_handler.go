package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/service"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
	"github.com/jmcastellanos/device-access-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	metrics *service.MetricsService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, metrics *service.MetricsService) *AuthHandler {
	return &AuthHandler{service: svc, metrics: metrics}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by name, email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(http.StatusBadRequest))
		return
	}

	loginToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":     "Login successful",
		"login_token": loginToken,
	})
}

// Logout godoc
// @Summary Logout current session
// @Description Revoke the login token used on this request
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]interface{}
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordTokenRevocation()

	response.Message(c, http.StatusOK, "Logged out successfully")
}

// RefreshToken godoc
// @Summary Refresh login token
// @Description Exchange a refresh token for a new login token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RefreshRequest true "Refresh payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	h.refresh(c, "Token refreshed successfully")
}

// RefreshTokenLogin godoc
// @Summary Refresh login token (legacy route)
// @Description Identical to /refresh-token, kept for client compatibility
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RefreshRequest true "Refresh payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /refresh-token-login [post]
func (h *AuthHandler) RefreshTokenLogin(c *gin.Context) {
	h.refresh(c, "New login token generated successfully")
}

// refresh backs both refresh routes; only the success wording differs.
func (h *AuthHandler) refresh(c *gin.Context, successMessage string) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(http.StatusBadRequest))
		return
	}

	loginToken, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message":     successMessage,
		"login_token": loginToken,
	})
}

// Register godoc
// @Summary Register user
// @Description Register a new user with password confirmation
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(http.StatusUnprocessableEntity))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// UserInfo godoc
// @Summary Get current user
// @Description Returns the authenticated user's public record
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /user-info [get]
func (h *AuthHandler) UserInfo(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	info, err := h.service.UserInfo(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "User information retrieved successfully",
		"user":    info,
	})
}
