package reschedule_reservation

import (
	"context"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	ClearAssignmentByReservation(ctx context.Context, reservationID int64) ([]*domain.ActivitySession, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
