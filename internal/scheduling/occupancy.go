package scheduling

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// CountAssignedSessions подсчитывает неотмененные занятия, уже
// назначенные инструктору на указанную дату
// Используется для контроля дневного лимита занятий
func CountAssignedSessions(sessions []*domain.ActivitySession, instructorID int64, date time.Time) int {
	count := 0
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		if session.InstructorID == nil || *session.InstructorID != instructorID {
			continue
		}
		if !session.SameDay(date) {
			continue
		}
		count++
	}
	return count
}

// VehicleOccupancy текущая загрузка транспорта в ротационном окне
type VehicleOccupancy struct {
	Passengers int
	WeightKg   float64
}

// CountVehicleOccupancy подсчитывает загрузку транспорта в симметричном
// ротационном окне (± policy.RotationWindowMinutes) вокруг указанного времени.
//
// Суммируются участники всех неотмененных занятий, назначенных на этот
// транспорт (+1 пассажир и оценочный вес за каждого назначенного инструктора).
// Инструктор занимает одно место независимо от того, сколько занятий в окне
// он ведет: бронь, разбитая на занятия по участникам, не умножает его вклад.
// Вес участников берется из метаданных занятия, при отсутствии - дефолтный
// вес за каждого участника.
//
// excludeReservationID позволяет при переназначении уже запланированной
// брони исключить её собственный прежний вклад в загрузку, чтобы бронь
// не конфликтовала сама с собой
func CountVehicleOccupancy(
	sessions []*domain.ActivitySession,
	vehicleID int64,
	date time.Time,
	start types.TimeString,
	excludeReservationID *int64,
	policy Policy,
) VehicleOccupancy {
	occupancy := VehicleOccupancy{}
	countedInstructors := make(map[int64]struct{})

	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		if session.VehicleID == nil || *session.VehicleID != vehicleID {
			continue
		}
		if !session.SameDay(date) {
			continue
		}
		if excludeReservationID != nil && session.ReservationID == *excludeReservationID {
			continue
		}
		if session.StartTime.IsZero() {
			continue
		}

		// Занятие входит в окно, если |t - start| <= RotationWindowMinutes
		if types.MinutesBetween(session.StartTime, start) > policy.RotationWindowMinutes {
			continue
		}

		occupancy.Passengers += session.ParticipantCount
		if session.WeightKg != nil {
			occupancy.WeightKg += *session.WeightKg
		} else {
			occupancy.WeightKg += float64(session.ParticipantCount) * policy.DefaultParticipantWeightKg
		}

		if session.InstructorID != nil {
			if _, counted := countedInstructors[*session.InstructorID]; !counted {
				countedInstructors[*session.InstructorID] = struct{}{}
				occupancy.Passengers++
				occupancy.WeightKg += policy.DefaultInstructorWeightKg
			}
		}
	}

	return occupancy
}
