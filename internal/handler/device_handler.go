package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/service"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
	"github.com/jmcastellanos/device-access-api/pkg/response"
)

// DeviceHandler wires HTTP endpoints to the device service.
type DeviceHandler struct {
	service *service.DeviceService
}

// NewDeviceHandler creates a new handler.
func NewDeviceHandler(svc *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: svc}
}

// Accessed godoc
// @Summary List accessed devices (summary)
// @Description Devices assigned to the authenticated user, trimmed projection
// @Tags Devices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /devices-accesed [get]
func (h *DeviceHandler) Accessed(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	devices, err := h.service.AccessedSummaries(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"devices": devices})
}

// AccessedDetailed godoc
// @Summary List accessed devices (detailed)
// @Description Devices assigned to the authenticated user, full records
// @Tags Devices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /devices-accesed-detailed [get]
func (h *DeviceHandler) AccessedDetailed(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	devices, err := h.service.AccessedDevices(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"devices": devices})
}

// Accessible godoc
// @Summary List accessible devices
// @Description Same result set as the detailed listing, kept for client compatibility
// @Tags Devices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /devices-accessible [get]
func (h *DeviceHandler) Accessible(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	devices, err := h.service.AccessedDevices(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Devices retrieved successfully.",
		"devices": devices,
	})
}

// Assign godoc
// @Summary Assign device to user
// @Description Create a device-to-user access record
// @Tags Devices
// @Accept json
// @Produce json
// @Param payload body models.AssignDeviceRequest true "Assignment payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /devices/assign [post]
func (h *DeviceHandler) Assign(c *gin.Context) {
	var req models.AssignDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(http.StatusUnprocessableEntity))
		return
	}

	if err := h.service.Assign(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Device assigned successfully.")
}

// Info godoc
// @Summary Get device info
// @Description Full device record by identifier
// @Tags Devices
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /devices-info/{id} [get]
func (h *DeviceHandler) Info(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.ErrDeviceNotFound)
		return
	}

	device, err := h.service.Info(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Device retrieved successfully",
		"device":  device,
	})
}
