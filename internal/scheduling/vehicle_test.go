package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/ptr"
)

func TestComputeReservationLoad(t *testing.T) {
	policy := DefaultPolicy()

	reservation := &domain.Reservation{
		ParticipantCount: 3,
		Participants: []domain.Participant{
			{Name: ptr.Ptr("a"), WeightKg: ptr.Ptr(90.0)},
			{Name: ptr.Ptr("b")},
			{Name: ptr.Ptr("c")},
		},
	}

	load := ComputeReservationLoad(reservation, nil, policy)
	assert.Equal(t, 3, load.Seats)
	// 90 за известного участника + 2 дефолта + водитель
	assert.Equal(t, 90.0+2*policy.DefaultParticipantWeightKg+policy.DriverWeightKg, load.WeightKg)

	instructor := &domain.Instructor{ID: 10, WeightKg: ptr.Ptr(75.0)}
	load = ComputeReservationLoad(reservation, instructor, policy)
	assert.Equal(t, 4, load.Seats)
	assert.Equal(t, 90.0+2*policy.DefaultParticipantWeightKg+policy.DriverWeightKg+75.0, load.WeightKg)
}

func TestCheckVehicleSeats(t *testing.T) {
	// 4 места всего, одно занимает водитель
	vehicle := &domain.Vehicle{ID: 5, CapacitySeats: 4, MaxWeightKg: 1000}

	load := ReservationLoad{Seats: 2, WeightKg: 100}

	// Один пассажир уже в окне: доступно 3-1=2 места, нужно 2 - проходит
	assert.NoError(t, CheckVehicle(vehicle, load, VehicleOccupancy{Passengers: 1, WeightKg: 80}))

	// Два пассажира в окне: доступно 1, нужно 2 - отказ с точными числами
	err := CheckVehicle(vehicle, load, VehicleOccupancy{Passengers: 2, WeightKg: 160})
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonCapacity, reason)
	assert.Contains(t, err.Error(), "available=1, needed=2")
}

func TestCheckVehicleReportsAllViolations(t *testing.T) {
	vehicle := &domain.Vehicle{ID: 5, CapacitySeats: 2, MaxWeightKg: 200}

	load := ReservationLoad{Seats: 3, WeightKg: 400}

	err := CheckVehicle(vehicle, load, VehicleOccupancy{})
	require.Error(t, err)

	// Оба нарушения сообщаются вместе, а не по одному
	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, ReasonCapacity, violations[0].Reason)
	assert.Equal(t, ReasonWeight, violations[1].Reason)
}

func TestCheckVehicleWeightOnly(t *testing.T) {
	vehicle := &domain.Vehicle{ID: 5, CapacitySeats: 10, MaxWeightKg: 300}

	err := CheckVehicle(vehicle, ReservationLoad{Seats: 2, WeightKg: 250}, VehicleOccupancy{WeightKg: 100})
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonWeight, reason)
}
