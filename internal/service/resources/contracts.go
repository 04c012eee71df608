package resources

import (
	"context"
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
	GetByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Instructor, error)
}

// ResourceRepository интерфейс репозитория ресурсов (транспорт, площадки)
type ResourceRepository interface {
	GetVehiclesByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Vehicle, error)
	GetSitesByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Site, error)
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByInstructorAndDate(ctx context.Context, instructorID int64, date time.Time) ([]*domain.ActivitySession, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
