package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/ptr"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

func sessionAt(id int64, instructorID int64, date time.Time, start types.TimeString, status domain.SessionStatus) *domain.ActivitySession {
	return &domain.ActivitySession{
		ID:           id,
		InstructorID: ptr.Ptr(instructorID),
		Date:         date,
		StartTime:    start,
		Status:       status,
	}
}

func TestCheckBuffer(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	existing := []*domain.ActivitySession{
		sessionAt(1, 10, date, "10:00", domain.SessionScheduled),
	}

	// 10:15 - всего 15 минут после существующего занятия, отказ
	err := CheckBuffer(existing, 10, date, "10:15", nil, policy)
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonBufferTime, reason)
	// В сообщении оба времени, чтобы оператор видел конфликтующую пару
	assert.Contains(t, err.Error(), "10:00")
	assert.Contains(t, err.Error(), "10:15")

	// Ровно 30 минут - граница включительно, проходит
	assert.NoError(t, CheckBuffer(existing, 10, date, "10:30", nil, policy))

	// Нулевая разница (пересохранение того же слота) конфликтом не считается
	assert.NoError(t, CheckBuffer(existing, 10, date, "10:00", nil, policy))

	// До занятия тоже должно быть не меньше буфера
	err = CheckBuffer(existing, 10, date, "09:45", nil, policy)
	require.Error(t, err)
	assert.NoError(t, CheckBuffer(existing, 10, date, "09:30", nil, policy))
}

func TestCheckBufferIgnoresIrrelevantSessions(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	otherDay := date.AddDate(0, 0, 1)
	policy := DefaultPolicy()

	// Отмененное занятие, чужой инструктор и другой день не участвуют
	sessions := []*domain.ActivitySession{
		sessionAt(1, 10, date, "10:10", domain.SessionCancelled),
		sessionAt(2, 99, date, "10:10", domain.SessionScheduled),
		sessionAt(3, 10, otherDay, "10:10", domain.SessionScheduled),
	}

	assert.NoError(t, CheckBuffer(sessions, 10, date, "10:15", nil, policy))
}

func TestCheckBufferExcludesOwnSession(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	sessions := []*domain.ActivitySession{
		sessionAt(1, 10, date, "10:10", domain.SessionScheduled),
	}

	// Перенос собственного занятия не конфликтует с его прежним временем
	assert.NoError(t, CheckBuffer(sessions, 10, date, "10:15", ptr.Ptr(int64(1)), policy))
}

func TestClosestSessionPicksNearest(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	sessions := []*domain.ActivitySession{
		sessionAt(1, 10, date, "08:00", domain.SessionScheduled),
		sessionAt(2, 10, date, "11:00", domain.SessionScheduled),
		sessionAt(3, 10, date, "15:00", domain.SessionScheduled),
	}

	closest := ClosestSession(sessions, 10, date, "10:30", nil)
	require.NotNil(t, closest)
	assert.Equal(t, int64(2), closest.ID)

	assert.Nil(t, ClosestSession(nil, 10, date, "10:30", nil))
}
