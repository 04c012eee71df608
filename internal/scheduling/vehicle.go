package scheduling

import (
	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// ReservationLoad потребность брони в местах и весе
type ReservationLoad struct {
	Seats    int
	WeightKg float64
}

// ComputeReservationLoad вычисляет, сколько мест и веса потребует бронь
// с учетом назначаемого инструктора и фиксированного веса водителя.
// Для участников без указанного веса берется дефолтный вес из политики
func ComputeReservationLoad(reservation *domain.Reservation, instructor *domain.Instructor, policy Policy) ReservationLoad {
	load := ReservationLoad{
		Seats:    reservation.ParticipantCount,
		WeightKg: policy.DriverWeightKg,
	}

	// Вес известных участников + дефолт для остальных
	known := 0
	for _, participant := range reservation.Participants {
		if participant.WeightKg != nil {
			load.WeightKg += *participant.WeightKg
			known++
		}
	}
	load.WeightKg += float64(reservation.ParticipantCount-known) * policy.DefaultParticipantWeightKg

	if instructor != nil {
		load.Seats++
		if instructor.WeightKg != nil {
			load.WeightKg += *instructor.WeightKg
		} else {
			load.WeightKg += policy.DefaultInstructorWeightKg
		}
	}

	return load
}

// CheckVehicle проверяет посадочные места и грузоподъемность транспорта.
//
// Обе проверки выполняются независимо, и оба нарушения (если есть)
// возвращаются вместе, а не по одному: одна неудачная попытка назначения
// сразу показывает все причины отказа
func CheckVehicle(
	vehicle *domain.Vehicle,
	load ReservationLoad,
	occupancy VehicleOccupancy,
) error {
	var violations Errors

	availableSeats := vehicle.PassengerSeats() - occupancy.Passengers
	if load.Seats > availableSeats {
		violations = append(violations, NewError(ReasonCapacity,
			"vehicle %d has insufficient seats: available=%d, needed=%d",
			vehicle.ID, availableSeats, load.Seats))
	}

	availableWeight := vehicle.MaxWeightKg - occupancy.WeightKg
	if load.WeightKg > availableWeight {
		violations = append(violations, NewError(ReasonWeight,
			"vehicle %d has insufficient payload: available=%.1fkg, needed=%.1fkg",
			vehicle.ID, availableWeight, load.WeightKg))
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}
