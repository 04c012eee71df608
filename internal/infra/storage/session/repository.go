package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/dbmetrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/psqlbuilder"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// sessionColumns колонки таблицы activity_sessions в порядке сканирования
var sessionColumns = []string{
	"id",
	"reservation_id",
	"activity_id",
	"company_id",
	"date",
	"start_time",
	"duration_minutes",
	"instructor_id",
	"site_id",
	"vehicle_id",
	"participant_count",
	"weight_kg",
	"metadata",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с занятиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое занятие
func (r *Repository) Create(ctx context.Context, session *domain.ActivitySession) (*domain.ActivitySession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(session.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal metadata: %v", ErrMarshalPayload, err)
	}

	var startTime *string
	if !session.StartTime.IsZero() {
		s := session.StartTime.String()
		startTime = &s
	}

	query, args, err := psqlbuilder.Insert("activity_sessions").
		Columns(
			"reservation_id",
			"activity_id",
			"company_id",
			"date",
			"start_time",
			"duration_minutes",
			"instructor_id",
			"site_id",
			"vehicle_id",
			"participant_count",
			"weight_kg",
			"metadata",
			"status",
		).
		Values(
			session.ReservationID,
			session.ActivityID,
			session.CompanyID,
			session.Date,
			startTime,
			session.DurationMinutes,
			session.InstructorID,
			session.SiteID,
			session.VehicleID,
			session.ParticipantCount,
			session.WeightKg,
			metadata,
			session.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByReservationID получает все занятия брони
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) ([]*domain.ActivitySession, error) {
	return r.getList(ctx, "GetByReservationID", squirrel.Eq{"reservation_id": reservationID})
}

// GetByInstructorAndDate получает все занятия инструктора на дату
// Используется проверками дневного лимита и перерыва: под сериализуемой
// транзакцией это чтение гарантирует, что конкурентное назначение на тот
// же набор строк не закоммитится одновременно
func (r *Repository) GetByInstructorAndDate(ctx context.Context, instructorID int64, date time.Time) ([]*domain.ActivitySession, error) {
	return r.getList(ctx, "GetByInstructorAndDate", squirrel.And{
		squirrel.Eq{"instructor_id": instructorID},
		squirrel.Eq{"date": dateOnly(date)},
	})
}

// GetByVehicleAndDate получает все занятия, назначенные на транспорт на дату
func (r *Repository) GetByVehicleAndDate(ctx context.Context, vehicleID int64, date time.Time) ([]*domain.ActivitySession, error) {
	return r.getList(ctx, "GetByVehicleAndDate", squirrel.And{
		squirrel.Eq{"vehicle_id": vehicleID},
		squirrel.Eq{"date": dateOnly(date)},
	})
}

// AssignByReservation атомарно записывает назначение во все активные
// занятия брони и переводит их в статус scheduled
func (r *Repository) AssignByReservation(ctx context.Context, reservationID int64, assignment domain.SessionAssignment) ([]*domain.ActivitySession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activity_sessions").
		Set("instructor_id", assignment.InstructorID).
		Set("site_id", assignment.SiteID).
		Set("vehicle_id", assignment.VehicleID).
		Set("date", dateOnly(assignment.Date)).
		Set("start_time", assignment.StartTime.String()).
		Set("duration_minutes", assignment.DurationMinutes).
		Set("status", domain.SessionScheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"status": []domain.SessionStatus{domain.SessionPending, domain.SessionScheduled}}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AssignByReservation - build update query: %v", ErrBuildQuery, err)
	}

	return r.queryList(ctx, executor, "AssignByReservation", query, args)
}

// ClearAssignmentByReservation снимает назначение со всех занятий брони
// и возвращает их в статус pending (используется при переносе)
func (r *Repository) ClearAssignmentByReservation(ctx context.Context, reservationID int64) ([]*domain.ActivitySession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activity_sessions").
		Set("instructor_id", nil).
		Set("site_id", nil).
		Set("vehicle_id", nil).
		Set("start_time", nil).
		Set("status", domain.SessionPending).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"status": []domain.SessionStatus{domain.SessionPending, domain.SessionScheduled}}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ClearAssignmentByReservation - build update query: %v", ErrBuildQuery, err)
	}

	return r.queryList(ctx, executor, "ClearAssignmentByReservation", query, args)
}

// CancelByReservation помечает отмененными все незавершенные занятия брони
func (r *Repository) CancelByReservation(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activity_sessions").
		Set("status", domain.SessionCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"status": []domain.SessionStatus{domain.SessionPending, domain.SessionScheduled}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByReservation - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CancelByReservation - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// getList выполняет выборку занятий по условию
func (r *Repository) getList(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.ActivitySession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("activity_sessions").
		Where(where).
		OrderBy("date, start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	return r.queryList(ctx, executor, op, query, args)
}

func (r *Repository) queryList(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.ActivitySession, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	sessions := make([]*domain.ActivitySession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, op, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return sessions, nil
}

// scanSession сканирует одну строку в доменную модель
func scanSession(rows *sql.Rows) (*domain.ActivitySession, error) {
	var session domain.ActivitySession
	var startTime sql.NullString
	var metadata []byte
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&session.ID,
		&session.ReservationID,
		&session.ActivityID,
		&session.CompanyID,
		&session.Date,
		&startTime,
		&session.DurationMinutes,
		&session.InstructorID,
		&session.SiteID,
		&session.VehicleID,
		&session.ParticipantCount,
		&session.WeightKg,
		&metadata,
		&session.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		session.StartTime = types.TimeString(startTime.String)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &session.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

// columnList возвращает колонки через запятую для RETURNING
func columnList() string {
	return strings.Join(sessionColumns, ", ")
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
