package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	instructorRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/instructor"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/resources/models"
)

// Service сервис чтения ресурсов компании: инструкторы, транспорт,
// площадки и дневные расписания инструкторов
type Service struct {
	instructorRepo InstructorRepository
	resourceRepo   ResourceRepository
	sessionRepo    SessionRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(
	instructorRepo InstructorRepository,
	resourceRepo ResourceRepository,
	sessionRepo SessionRepository,
	logger Logger,
) *Service {
	return &Service{
		instructorRepo: instructorRepo,
		resourceRepo:   resourceRepo,
		sessionRepo:    sessionRepo,
		logger:         logger,
	}
}

// GetInstructors получает инструкторов компании
func (s *Service) GetInstructors(ctx context.Context, companyID int64, onlyActive bool) (*models.InstructorListResponse, error) {
	s.logger.Info("GetInstructors: fetching instructors for company=%d", companyID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	instructors, err := s.instructorRepo.GetByCompany(ctx, companyID, onlyActive)
	if err != nil {
		s.logger.Error("GetInstructors: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetInstructors - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInstructorList(instructors), nil
}

// GetVehicles получает транспорт компании
func (s *Service) GetVehicles(ctx context.Context, companyID int64, onlyActive bool) (*models.VehicleListResponse, error) {
	s.logger.Info("GetVehicles: fetching vehicles for company=%d", companyID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	vehicles, err := s.resourceRepo.GetVehiclesByCompany(ctx, companyID, onlyActive)
	if err != nil {
		s.logger.Error("GetVehicles: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetVehicles - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicleList(vehicles), nil
}

// GetSites получает площадки компании
func (s *Service) GetSites(ctx context.Context, companyID int64, onlyActive bool) (*models.SiteListResponse, error) {
	s.logger.Info("GetSites: fetching sites for company=%d", companyID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	sites, err := s.resourceRepo.GetSitesByCompany(ctx, companyID, onlyActive)
	if err != nil {
		s.logger.Error("GetSites: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSites - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSiteList(sites), nil
}

// GetInstructorSchedule получает расписание инструктора на дату
// Используется операторами для выбора свободного слота перед назначением
func (s *Service) GetInstructorSchedule(ctx context.Context, instructorID int64, date time.Time) (*models.InstructorScheduleResponse, error) {
	s.logger.Info("GetInstructorSchedule: instructor=%d, date=%s", instructorID, date.Format("2006-01-02"))

	if instructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	instructor, err := s.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			s.logger.Warn("GetInstructorSchedule: instructor id=%d not found", instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetInstructorSchedule: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetInstructorSchedule - repository error: %v", ErrInternal, err)
	}

	sessions, err := s.sessionRepo.GetByInstructorAndDate(ctx, instructorID, date)
	if err != nil {
		s.logger.Error("GetInstructorSchedule: failed to get sessions for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetInstructorSchedule - sessions error: %v", ErrInternal, err)
	}

	return models.BuildInstructorSchedule(instructor, date, sessions), nil
}
