package scheduling

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// CheckAvailability проверяет, что запрошенное время попадает в окно
// доступности инструктора (разрешенные дни недели и часы, с учетом
// дат-исключений)
func CheckAvailability(instructor *domain.Instructor, date time.Time, start types.TimeString) error {
	var startTime *types.TimeString
	if !start.IsZero() {
		startTime = &start
	}

	if !instructor.Availability.IsAllowedAt(date, startTime) {
		return NewError(ReasonAvailability,
			"instructor %d is outside availability window at %s %s",
			instructor.ID, date.Format(domain.DateFormat), start)
	}

	return nil
}

// CheckDailyLimit проверяет дневной лимит занятий инструктора
// adding - сколько занятий добавит назначение (бронь с посессионной
// стратегией добавляет занятие на каждого участника)
// В сообщение включаются текущее число занятий и лимит
func CheckDailyLimit(sessions []*domain.ActivitySession, instructor *domain.Instructor, date time.Time, adding int) error {
	limit := instructor.MaxSessionsPerDay
	if limit <= 0 {
		limit = domain.DefaultMaxSessionsPerDay
	}
	if adding <= 0 {
		adding = 1
	}

	assigned := CountAssignedSessions(sessions, instructor.ID, date)
	if assigned+adding > limit {
		return NewError(ReasonDailyLimit,
			"daily session limit reached for instructor %d: assigned=%d, adding=%d, limit=%d",
			instructor.ID, assigned, adding, limit)
	}

	return nil
}
