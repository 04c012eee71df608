package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/dbmetrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// activityColumns колонки таблицы activities в порядке сканирования
var activityColumns = []string{
	"id",
	"company_id",
	"name",
	"activity_type",
	"min_participants",
	"max_participants",
	"duration_minutes",
	"pricing",
	"constraints",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с активностями
// Документы pricing и constraints декодируются один раз на границе
// хранилища: выше по стеку ходят только закрытые типизированные варианты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активность по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	activity, err := scanActivity(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	return activity, nil
}

// GetByCompany получает активности компании
func (r *Repository) GetByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(activityColumns...).
		From("activities").
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

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - iterate rows: %v", ErrScanRow, err)
	}

	return activities, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanActivity сканирует строку и декодирует конфигурационные документы
func scanActivity(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	var pricing, constraints []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&activity.ID,
		&activity.CompanyID,
		&activity.Name,
		&activity.ActivityType,
		&activity.MinParticipants,
		&activity.MaxParticipants,
		&activity.DurationMinutes,
		&pricing,
		&constraints,
		&activity.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan activity: %v", ErrScanRow, err)
	}

	// Неизвестный тег стратегии отвергается здесь, а не молча заменяется
	// дефолтом: выше вернется config_error, указывающий на данные тенанта
	activity.Pricing, err = domain.DecodePricingStrategy(pricing)
	if err != nil {
		return nil, fmt.Errorf("%w: activity id=%d pricing: %v", ErrBadConfig, activity.ID, err)
	}

	activity.Constraints, err = domain.DecodeActivityConstraints(constraints)
	if err != nil {
		return nil, fmt.Errorf("%w: activity id=%d constraints: %v", ErrBadConfig, activity.ID, err)
	}

	if createdAt.Valid {
		activity.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		activity.UpdatedAt = updatedAt.Time
	}

	return &activity, nil
}
