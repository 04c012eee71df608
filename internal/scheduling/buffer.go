package scheduling

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// ClosestSession находит ближайшее по времени неотмененное занятие
// инструктора на указанную дату, исключая занятие excludeSessionID
// (занятие, которое сейчас переносится). Возвращает nil, если занятий нет
func ClosestSession(
	sessions []*domain.ActivitySession,
	instructorID int64,
	date time.Time,
	start types.TimeString,
	excludeSessionID *int64,
) *domain.ActivitySession {
	var closest *domain.ActivitySession
	closestDelta := 0

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
		if excludeSessionID != nil && session.ID == *excludeSessionID {
			continue
		}
		if session.StartTime.IsZero() {
			continue
		}

		delta := types.MinutesBetween(session.StartTime, start)
		if closest == nil || delta < closestDelta {
			closest = session
			closestDelta = delta
		}
	}

	return closest
}

// CheckBuffer проверяет минимальный перерыв между занятиями инструктора.
//
// Нулевая разница во времени (повторное сохранение того же слота) конфликтом
// НЕ считается: проверка защищает от двух разных занятий впритык, а не от
// пересохранения администратором того же времени. Положительная разница
// меньше BufferMinutes - отказ; граница включительно (ровно BufferMinutes -
// проходит)
func CheckBuffer(
	sessions []*domain.ActivitySession,
	instructorID int64,
	date time.Time,
	start types.TimeString,
	excludeSessionID *int64,
	policy Policy,
) error {
	closest := ClosestSession(sessions, instructorID, date, start, excludeSessionID)
	if closest == nil {
		return nil
	}

	delta := types.MinutesBetween(closest.StartTime, start)
	if delta == 0 {
		return nil
	}

	if delta < policy.BufferMinutes {
		return NewError(ReasonBufferTime,
			"insufficient rest time for instructor %d: existing session at %s, requested %s, minimum buffer %d minutes",
			instructorID, closest.StartTime, start, policy.BufferMinutes)
	}

	return nil
}
