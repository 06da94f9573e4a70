package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jmcastellanos/device-access-api/internal/models"
)

// DeviceRepository provides database access for devices and their user
// associations. Listings use explicit joins over the access table rather than a
// relationship graph.
type DeviceRepository struct {
	db *sqlx.DB
}

// NewDeviceRepository creates a new instance of DeviceRepository.
func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// FindByID returns a device by identifier.
func (r *DeviceRepository) FindByID(ctx context.Context, id int64) (*models.Device, error) {
	const query = `SELECT id, name, model, device_unique_id, created_at, updated_at FROM devices WHERE id = $1 LIMIT 1`
	var device models.Device
	if err := r.db.GetContext(ctx, &device, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find device by id: %w", err)
	}
	return &device, nil
}

// ListByUser returns all devices the user has access to.
func (r *DeviceRepository) ListByUser(ctx context.Context, userID int64) ([]models.Device, error) {
	const query = `SELECT d.id, d.name, d.model, d.device_unique_id, d.created_at, d.updated_at FROM devices d JOIN access a ON a.device_id = d.id WHERE a.user_id = $1 ORDER BY d.id`
	devices := []models.Device{}
	if err := r.db.SelectContext(ctx, &devices, query, userID); err != nil {
		return nil, fmt.Errorf("list devices by user: %w", err)
	}
	return devices, nil
}

// ListSummariesByUser returns the trimmed projection of the user's devices.
func (r *DeviceRepository) ListSummariesByUser(ctx context.Context, userID int64) ([]models.DeviceSummary, error) {
	const query = `SELECT d.name, d.model, d.device_unique_id FROM devices d JOIN access a ON a.device_id = d.id WHERE a.user_id = $1 ORDER BY d.id`
	summaries := []models.DeviceSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, fmt.Errorf("list device summaries by user: %w", err)
	}
	return summaries, nil
}

// CreateAccess inserts the (user, device) pair. The unique constraint on the pair
// makes a repeated assignment surface as ErrDuplicate instead of a second row.
func (r *DeviceRepository) CreateAccess(ctx context.Context, userID, deviceID int64) error {
	now := time.Now().UTC()
	const query = `INSERT INTO access (user_id, device_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, userID, deviceID, now, now); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("create access: %w", err)
	}
	return nil
}
