package instructor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/dbmetrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// instructorColumns колонки таблицы instructors в порядке сканирования
var instructorColumns = []string{
	"id",
	"company_id",
	"name",
	"activity_types",
	"certifications",
	"availability",
	"max_sessions_per_day",
	"weight_kg",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с инструкторами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструкторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает инструктора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instructorColumns...).
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	instructor, err := scanInstructor(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, err
	}

	return instructor, nil
}

// GetByCompany получает инструкторов компании
func (r *Repository) GetByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(instructorColumns...).
		From("instructors").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - iterate rows: %v", ErrScanRow, err)
	}

	return instructors, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanInstructor сканирует строку в доменную модель
func scanInstructor(row rowScanner) (*domain.Instructor, error) {
	var instructor domain.Instructor
	var activityTypes, certifications pq.StringArray
	var availability []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&instructor.ID,
		&instructor.CompanyID,
		&instructor.Name,
		&activityTypes,
		&certifications,
		&availability,
		&instructor.MaxSessionsPerDay,
		&instructor.WeightKg,
		&instructor.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan instructor: %v", ErrScanRow, err)
	}

	instructor.ActivityTypes = activityTypes
	instructor.Certifications = certifications

	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &instructor.Availability); err != nil {
			return nil, fmt.Errorf("%w: instructor id=%d: %v", ErrBadAvailability, instructor.ID, err)
		}
	}

	if createdAt.Valid {
		instructor.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		instructor.UpdatedAt = updatedAt.Time
	}

	return &instructor, nil
}
