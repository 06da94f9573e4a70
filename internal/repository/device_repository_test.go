package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDeviceByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "model", "device_unique_id", "created_at", "updated_at"}).
		AddRow(int64(1), "Android Phone", "Model X", "ABC123", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, model, device_unique_id, created_at, updated_at FROM devices WHERE id = $1 LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	device, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", device.DeviceUniqueID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDeviceByIDNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	mock.ExpectQuery("SELECT .+ FROM devices WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSummariesByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	rows := sqlmock.NewRows([]string{"name", "model", "device_unique_id"}).
		AddRow("Android Phone", "Model X", "ABC123")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT d.name, d.model, d.device_unique_id FROM devices d JOIN access a ON a.device_id = d.id WHERE a.user_id = $1 ORDER BY d.id")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	summaries, err := repo.ListSummariesByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Model X", summaries[0].Model)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "model", "device_unique_id", "created_at", "updated_at"})
	mock.ExpectQuery("SELECT d.id, .+ FROM devices d JOIN access a ON").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	devices, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccess(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO access (user_id, device_id, created_at, updated_at) VALUES ($1, $2, $3, $4)")).
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateAccess(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccessDuplicatePair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDeviceRepository(db)

	mock.ExpectExec("INSERT INTO access").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "access_user_id_device_id_key"})

	err := repo.CreateAccess(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
