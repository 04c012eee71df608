package activity

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func activityRow(pricing, constraints string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(activityColumns).
		AddRow(5, 1, "Открытая вода", "dive", 1, 6, 90, []byte(pricing), []byte(constraints), true, now, now)
}

func TestGetByID(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	pricing := `{"type":"tiered","tiers":[{"maxParticipants":4,"pricePerParticipant":70},{"maxParticipants":2,"price":150}]}`
	constraints := `{"maxWeightKg":120,"addOnCertifications":{"night":["night-cert"]}}`

	mock.ExpectQuery("SELECT .+ FROM activities WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(activityRow(pricing, constraints))

	activity, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), activity.ID)
	assert.Equal(t, "dive", activity.ActivityType)

	require.NotNil(t, activity.Pricing)
	assert.Equal(t, domain.PricingTiered, activity.Pricing.Type)
	// Уровни отсортированы по возрастанию maxParticipants при декодировании
	require.Len(t, activity.Pricing.Tiers, 2)
	assert.Equal(t, 2, activity.Pricing.Tiers[0].MaxParticipants)
	assert.Equal(t, 4, activity.Pricing.Tiers[1].MaxParticipants)

	require.NotNil(t, activity.Constraints)
	require.NotNil(t, activity.Constraints.MaxWeightKg)
	assert.Equal(t, float64(120), *activity.Constraints.MaxWeightKg)
	assert.Equal(t, []string{"night-cert"}, activity.Constraints.RequiredCertificationsFor([]string{"night"}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .+ FROM activities").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(activityColumns))

	activity, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrActivityNotFound)
	assert.Nil(t, activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDUnknownPricingType(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	// Неизвестный тег стратегии отвергается на границе хранилища
	mock.ExpectQuery("SELECT .+ FROM activities").
		WithArgs(int64(5)).
		WillReturnRows(activityRow(`{"type":"dynamic"}`, `{}`))

	activity, err := repo.GetByID(context.Background(), 5)
	require.ErrorIs(t, err, ErrBadConfig)
	assert.Contains(t, err.Error(), "unknown pricing strategy")
	assert.Nil(t, activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCompanyOnlyActive(t *testing.T) {
	repo, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .+ FROM activities WHERE company_id = \\$1 AND active = \\$2 ORDER BY name").
		WithArgs(int64(1), true).
		WillReturnRows(activityRow(`{"type":"flat","amount":150}`, `{}`))

	activities, err := repo.GetByCompany(context.Background(), 1, true)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, domain.PricingFlat, activities[0].Pricing.Type)
	assert.Equal(t, float64(150), activities[0].Pricing.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
