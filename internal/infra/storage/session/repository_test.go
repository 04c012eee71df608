package session

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func sessionRows() *sqlmock.Rows {
	return sqlmock.NewRows(sessionColumns)
}

func TestGetByInstructorAndDate(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sessionRows().
		AddRow(200, 100, 5, 1, date, "10:00", 90, 10, nil, nil, 2, nil, []byte(`{}`), "scheduled", now, now).
		AddRow(201, 101, 5, 1, date, "14:00", 60, 10, nil, 7, 1, 85.5, nil, "scheduled", now, now)

	mock.ExpectQuery("SELECT .+ FROM activity_sessions WHERE \\(instructor_id = \\$1 AND date = \\$2\\)").
		WithArgs(int64(10), date).
		WillReturnRows(rows)

	sessions, err := repo.GetByInstructorAndDate(context.Background(), 10, date)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, int64(200), sessions[0].ID)
	assert.Equal(t, types.TimeString("10:00"), sessions[0].StartTime)
	require.NotNil(t, sessions[0].InstructorID)
	assert.Equal(t, int64(10), *sessions[0].InstructorID)
	assert.Nil(t, sessions[0].VehicleID)

	require.NotNil(t, sessions[1].VehicleID)
	assert.Equal(t, int64(7), *sessions[1].VehicleID)
	require.NotNil(t, sessions[1].WeightKg)
	assert.Equal(t, 85.5, *sessions[1].WeightKg)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByInstructorAndDateTruncatesTime(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	// Дата с компонентом времени приводится к полуночи перед запросом
	date := time.Date(2026, 6, 15, 13, 45, 12, 0, time.UTC)
	midnight := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM activity_sessions").
		WithArgs(int64(10), midnight).
		WillReturnRows(sessionRows())

	sessions, err := repo.GetByInstructorAndDate(context.Background(), 10, date)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignByReservation(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sessionRows().
		AddRow(200, 100, 5, 1, date, "10:00", 90, 10, 3, 7, 2, nil, nil, "scheduled", now, now)

	// Назначение затрагивает только pending и scheduled занятия брони
	mock.ExpectQuery("UPDATE activity_sessions SET .+ WHERE reservation_id = \\$\\d+ AND status IN .+ RETURNING").
		WillReturnRows(rows)

	assignment := domain.SessionAssignment{
		InstructorID:    10,
		SiteID:          ptrInt64(3),
		VehicleID:       ptrInt64(7),
		Date:            date,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 90,
	}

	sessions, err := repo.AssignByReservation(context.Background(), 100, assignment)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.SessionScheduled, sessions[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAssignmentByReservation(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sessionRows().
		AddRow(200, 100, 5, 1, date, nil, 90, nil, nil, nil, 2, nil, nil, "pending", now, now)

	mock.ExpectQuery("UPDATE activity_sessions SET .+ WHERE reservation_id = \\$\\d+ AND status IN .+ RETURNING").
		WillReturnRows(rows)

	sessions, err := repo.ClearAssignmentByReservation(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.SessionPending, sessions[0].Status)
	assert.True(t, sessions[0].StartTime.IsZero())
	assert.Nil(t, sessions[0].InstructorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelByReservation(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE activity_sessions SET .+ WHERE reservation_id = \\$\\d+ AND status IN").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.CancelByReservation(context.Background(), 100)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptrInt64(v int64) *int64 {
	return &v
}
