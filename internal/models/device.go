package models

import "time"

// Device represents a registered device. Devices are created out of band and are
// immutable through this API.
type Device struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Model          string    `db:"model" json:"model"`
	DeviceUniqueID string    `db:"device_unique_id" json:"device_unique_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DeviceSummary is the trimmed projection returned by the summary listing.
type DeviceSummary struct {
	Name           string `db:"name" json:"name"`
	Model          string `db:"model" json:"model"`
	DeviceUniqueID string `db:"device_unique_id" json:"device_unique_id"`
}

// Access records that a user may see a device. The pair is unique at the store
// layer, so duplicate assignments fail on insert.
type Access struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	DeviceID  int64     `db:"device_id" json:"device_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
