package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/ptr"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

func vehicleSession(reservationID int64, vehicleID int64, date time.Time, start types.TimeString, participants int) *domain.ActivitySession {
	return &domain.ActivitySession{
		ReservationID:    reservationID,
		VehicleID:        ptr.Ptr(vehicleID),
		Date:             date,
		StartTime:        start,
		ParticipantCount: participants,
		Status:           domain.SessionScheduled,
	}
}

func TestCountAssignedSessions(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	sessions := []*domain.ActivitySession{
		sessionAt(1, 10, date, "09:00", domain.SessionScheduled),
		sessionAt(2, 10, date, "11:00", domain.SessionPending),
		sessionAt(3, 10, date, "13:00", domain.SessionCancelled),
		sessionAt(4, 10, date.AddDate(0, 0, 1), "09:00", domain.SessionScheduled),
		sessionAt(5, 99, date, "09:00", domain.SessionScheduled),
	}

	assert.Equal(t, 2, CountAssignedSessions(sessions, 10, date))
	assert.Equal(t, 1, CountAssignedSessions(sessions, 99, date))
	assert.Equal(t, 0, CountAssignedSessions(nil, 10, date))
}

func TestCountVehicleOccupancyWindow(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	sessions := []*domain.ActivitySession{
		vehicleSession(1, 5, date, "10:00", 2),
		vehicleSession(2, 5, date, "10:30", 1),
		vehicleSession(3, 5, date, "11:01", 4), // за пределами окна ±30 минут
		vehicleSession(4, 6, date, "10:00", 3), // другой транспорт
	}

	occupancy := CountVehicleOccupancy(sessions, 5, date, "10:30", nil, policy)
	assert.Equal(t, 3, occupancy.Passengers)
	assert.Equal(t, 3*policy.DefaultParticipantWeightKg, occupancy.WeightKg)
}

func TestCountVehicleOccupancyWeights(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	// Вес из метаданных занятия имеет приоритет над дефолтом
	withWeight := vehicleSession(1, 5, date, "10:00", 2)
	withWeight.WeightKg = ptr.Ptr(190.0)

	occupancy := CountVehicleOccupancy([]*domain.ActivitySession{withWeight}, 5, date, "10:00", nil, policy)
	assert.Equal(t, 2, occupancy.Passengers)
	assert.Equal(t, 190.0, occupancy.WeightKg)

	// Назначенный инструктор добавляет место и оценочный вес
	withInstructor := vehicleSession(2, 5, date, "10:00", 2)
	withInstructor.InstructorID = ptr.Ptr(int64(10))

	occupancy = CountVehicleOccupancy([]*domain.ActivitySession{withInstructor}, 5, date, "10:00", nil, policy)
	assert.Equal(t, 3, occupancy.Passengers)
	assert.Equal(t, 2*policy.DefaultParticipantWeightKg+policy.DefaultInstructorWeightKg, occupancy.WeightKg)
}

func TestCountVehicleOccupancyCountsInstructorOnce(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	// Бронь разбита на занятия по одному участнику, инструктор один на всех:
	// он занимает одно место и один вес, а не по месту за каждое занятие
	sessions := make([]*domain.ActivitySession, 0, 3)
	for i := int64(1); i <= 3; i++ {
		session := vehicleSession(100, 5, date, "10:00", 1)
		session.ID = i
		session.InstructorID = ptr.Ptr(int64(10))
		sessions = append(sessions, session)
	}

	occupancy := CountVehicleOccupancy(sessions, 5, date, "10:00", nil, policy)
	assert.Equal(t, 4, occupancy.Passengers)
	assert.Equal(t, 3*policy.DefaultParticipantWeightKg+policy.DefaultInstructorWeightKg, occupancy.WeightKg)

	// Два разных инструктора в окне - два места
	other := vehicleSession(200, 5, date, "10:15", 1)
	other.InstructorID = ptr.Ptr(int64(11))
	sessions = append(sessions, other)

	occupancy = CountVehicleOccupancy(sessions, 5, date, "10:00", nil, policy)
	assert.Equal(t, 7, occupancy.Passengers)
}

func TestCountVehicleOccupancyExcludesOwnReservation(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	sessions := []*domain.ActivitySession{
		vehicleSession(7, 5, date, "10:00", 2),
		vehicleSession(8, 5, date, "10:15", 1),
	}

	// При переназначении брони 7 её прежний вклад в загрузку не учитывается
	occupancy := CountVehicleOccupancy(sessions, 5, date, "10:00", ptr.Ptr(int64(7)), policy)
	assert.Equal(t, 1, occupancy.Passengers)
}
