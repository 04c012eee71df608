package assign_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// Request модель запроса на назначение брони
type Request struct {
	ReservationID int64            // ID брони
	CompanyID     int64            // ID компании (tenant scope, задается вызывающей стороной)
	InstructorID  int64            // ID назначаемого инструктора
	Date          time.Time        // Дата занятия (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	SiteID        *int64           // ID площадки (опционально)
	VehicleID     *int64           // ID транспорта (опционально)
}

// ScheduledSession назначенное занятие в ответе
type ScheduledSession struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
}

// Response модель ответа с результатом назначения
// Вызывающая сторона использует его для уведомлений и дальнейшей обработки
type Response struct {
	ReservationID int64
	PublicID      uuid.UUID
	Status        string
	InstructorID  int64
	SiteID        *int64
	VehicleID     *int64
	Sessions      []ScheduledSession
}
