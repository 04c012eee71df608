package reservations

import (
	"context"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyReservationsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) ([]*domain.ActivitySession, error)
	CancelByReservation(ctx context.Context, reservationID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
