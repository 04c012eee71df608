package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/pkg/dbmetrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с ресурсами компании: транспорт и
// площадки хранятся как специализации общей таблицы resources
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// vehicleColumns колонки представления транспорта
var vehicleColumns = []string{
	"id",
	"company_id",
	"name",
	"capacity_seats",
	"max_weight_kg",
	"active",
	"created_at",
	"updated_at",
}

// GetVehicleByID получает транспорт по ID
func (r *Repository) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleByID - build select query: %v", ErrBuildQuery, err)
	}

	vehicle, err := scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleByID - scan vehicle: %v", ErrScanRow, err)
	}

	return vehicle, nil
}

// GetVehiclesByCompany получает транспорт компании
func (r *Repository) GetVehiclesByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehiclesByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehiclesByCompany - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetVehiclesByCompany - scan vehicle: %v", ErrScanRow, err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetVehiclesByCompany - iterate rows: %v", ErrScanRow, err)
	}

	return vehicles, nil
}

// siteColumns колонки представления площадок
var siteColumns = []string{
	"id",
	"company_id",
	"name",
	"activity_types",
	"active",
	"created_at",
	"updated_at",
}

// GetSiteByID получает площадку по ID
func (r *Repository) GetSiteByID(ctx context.Context, id int64) (*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(siteColumns...).
		From("sites").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSiteByID - build select query: %v", ErrBuildQuery, err)
	}

	site, err := scanSite(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiteByID - scan site: %v", ErrScanRow, err)
	}

	return site, nil
}

// GetSitesByCompany получает площадки компании
func (r *Repository) GetSitesByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(siteColumns...).
		From("sites").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSitesByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSitesByCompany - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sites := make([]*domain.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSitesByCompany - scan site: %v", ErrScanRow, err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSitesByCompany - iterate rows: %v", ErrScanRow, err)
	}

	return sites, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&vehicle.ID,
		&vehicle.CompanyID,
		&vehicle.Name,
		&vehicle.CapacitySeats,
		&vehicle.MaxWeightKg,
		&vehicle.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdAt.Valid {
		vehicle.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		vehicle.UpdatedAt = updatedAt.Time
	}

	return &vehicle, nil
}

func scanSite(row rowScanner) (*domain.Site, error) {
	var site domain.Site
	var activityTypes pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&site.ID,
		&site.CompanyID,
		&site.Name,
		&activityTypes,
		&site.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	site.ActivityTypes = activityTypes

	if createdAt.Valid {
		site.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		site.UpdatedAt = updatedAt.Time
	}

	return &site, nil
}
