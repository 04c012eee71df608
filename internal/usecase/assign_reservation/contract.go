package assign_reservation

import (
	"context"
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) ([]*domain.ActivitySession, error)
	GetByInstructorAndDate(ctx context.Context, instructorID int64, date time.Time) ([]*domain.ActivitySession, error)
	GetByVehicleAndDate(ctx context.Context, vehicleID int64, date time.Time) ([]*domain.ActivitySession, error)
	AssignByReservation(ctx context.Context, reservationID int64, assignment domain.SessionAssignment) ([]*domain.ActivitySession, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// VehicleRepository интерфейс репозитория транспорта
type VehicleRepository interface {
	GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// SiteRepository интерфейс репозитория площадок
type SiteRepository interface {
	GetSiteByID(ctx context.Context, id int64) (*domain.Site, error)
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
