package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/repository"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
	"github.com/jmcastellanos/device-access-api/pkg/validation"
)

type deviceRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Device, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Device, error)
	ListSummariesByUser(ctx context.Context, userID int64) ([]models.DeviceSummary, error)
	CreateAccess(ctx context.Context, userID, deviceID int64) error
}

type deviceUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// DeviceService handles device lookups and device-to-user assignment.
type DeviceService struct {
	devices   deviceRepository
	users     deviceUserLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDeviceService constructs a DeviceService instance.
func NewDeviceService(devices deviceRepository, users deviceUserLookup, validate *validator.Validate, logger *zap.Logger) *DeviceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &DeviceService{devices: devices, users: users, validator: validate, logger: logger}
}

// AccessedSummaries returns the trimmed listing of the user's devices. An empty
// result is a valid, successful answer.
func (s *DeviceService) AccessedSummaries(ctx context.Context, userID int64) ([]models.DeviceSummary, error) {
	summaries, err := s.devices.ListSummariesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list device summaries", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}
	return summaries, nil
}

// AccessedDevices returns the full records of the user's devices. Both detailed
// listing routes share this method.
func (s *DeviceService) AccessedDevices(ctx context.Context, userID int64) ([]models.Device, error) {
	devices, err := s.devices.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list devices", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}
	return devices, nil
}

// Assign links a device to a user. Both must exist; a repeated assignment is
// rejected by the unique pair constraint, leaving exactly one access row.
func (s *DeviceService) Assign(ctx context.Context, req models.AssignDeviceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(http.StatusUnprocessableEntity, validation.Messages(err))
	}

	if _, err := s.devices.FindByID(ctx, req.DeviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Validation(http.StatusUnprocessableEntity, validation.Selected("device_id"))
		}
		return appErrors.Clone(appErrors.ErrInternal, "")
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Validation(http.StatusUnprocessableEntity, validation.Selected("user_id"))
		}
		return appErrors.Clone(appErrors.ErrInternal, "")
	}

	if err := s.devices.CreateAccess(ctx, req.UserID, req.DeviceID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.ErrAlreadyAssigned
		}
		s.logger.Error("failed to assign device", zap.Error(err))
		return appErrors.Clone(appErrors.ErrInternal, "")
	}

	return nil
}

// Info returns the full device record by identifier.
func (s *DeviceService) Info(ctx context.Context, id int64) (*models.Device, error) {
	device, err := s.devices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrDeviceNotFound
		}
		s.logger.Error("failed to load device", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}
	return device, nil
}
