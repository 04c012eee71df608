package assign_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	activityRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/activity"
	instructorRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/instructor"
	reservationRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/reservation"
	resourceRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/resource"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	"github.com/dkomnin/AVB-SchedulingService/pkg/txmanager"
)

// UseCase use case назначения инструктора (и опционально площадки и
// транспорта) на бронь.
//
// Все проверки и запись результата выполняются внутри одной сериализуемой
// транзакции: чтение текущей занятости, валидация и коммит нового
// назначения без наблюдаемого извне промежуточного состояния. Две
// конкурентные попытки, претендующие на одного инструктора или один
// транспорт, не могут закоммититься обе - проигравшая получает конфликт
// сериализации и должна быть повторена
type UseCase struct {
	reservationRepo ReservationRepository
	sessionRepo     SessionRepository
	activityRepo    ActivityRepository
	instructorRepo  InstructorRepository
	vehicleRepo     VehicleRepository
	siteRepo        SiteRepository
	txManager       TransactionManager
	policy          scheduling.Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	sessionRepo SessionRepository,
	activityRepo ActivityRepository,
	instructorRepo InstructorRepository,
	vehicleRepo VehicleRepository,
	siteRepo SiteRepository,
	txManager TransactionManager,
	policy scheduling.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		activityRepo:    activityRepo,
		instructorRepo:  instructorRepo,
		vehicleRepo:     vehicleRepo,
		siteRepo:        siteRepo,
		txManager:       txManager,
		policy:          policy.Normalize(),
		logger:          logger,
	}
}

// Execute выполняет назначение брони
//
// Порядок проверок фиксированный: квалификация и доступность - статические
// и дешевые, проверки занятости (дневной лимит, перерыв, транспорт)
// требуют сканирования соседних записей и идут последними, чтобы не
// тратить работу на заведомо провальные запросы. Первый отказ прерывает
// цепочку; проверки транспорта - исключение, они сообщают все нарушения
// сразу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignReservation: reservation=%d, company=%d, instructor=%d, date=%s, time=%s",
		req.ReservationID, req.CompanyID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignReservation: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		assigned, err := uc.assignInTx(txCtx, req)
		if err != nil {
			return err
		}
		result = assigned
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("AssignReservation: serialization conflict for reservation=%d", req.ReservationID)
			return nil, ErrAssignmentConflict
		}
		return nil, err
	}

	uc.logger.Info("AssignReservation: reservation=%d scheduled with instructor=%d at %s %s",
		req.ReservationID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime)

	return result, nil
}

// assignInTx выполняет проверки и коммит назначения внутри транзакции
func (uc *UseCase) assignInTx(ctx context.Context, req *Request) (*Response, error) {
	// 1. Загружаем бронь и проверяем, что она может быть назначена
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("AssignReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("AssignReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// Tenant scope приходит от вызывающей стороны: чужая бронь неотличима
	// от несуществующей
	if reservation.CompanyID != req.CompanyID {
		uc.logger.Warn("AssignReservation: reservation id=%d does not belong to company=%d",
			req.ReservationID, req.CompanyID)
		return nil, ErrReservationNotFound
	}

	if !reservation.CanBeScheduled() {
		uc.logger.Warn("AssignReservation: reservation id=%d has status=%s, cannot be scheduled",
			req.ReservationID, reservation.Status)
		return nil, ErrNotSchedulable
	}

	// 2. Загружаем занятия брони
	reservationSessions, err := uc.sessionRepo.GetByReservationID(ctx, req.ReservationID)
	if err != nil {
		uc.logger.Error("AssignReservation: failed to get sessions for reservation=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation sessions: %v", ErrInternal, err)
	}

	activeSessions := 0
	for _, session := range reservationSessions {
		if session.IsActive() && !session.IsTerminal() {
			activeSessions++
		}
	}
	if activeSessions == 0 {
		uc.logger.Warn("AssignReservation: reservation id=%d has no schedulable sessions", req.ReservationID)
		return nil, ErrNoSessions
	}

	// 3. Загружаем активность
	activity, err := uc.activityRepo.GetByID(ctx, reservation.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("AssignReservation: activity id=%d not found", reservation.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("AssignReservation: failed to get activity id=%d: %v", reservation.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}
	if !activity.Active {
		uc.logger.Warn("AssignReservation: activity id=%d is inactive", activity.ID)
		return nil, ErrActivityNotFound
	}

	// 4. Загружаем инструктора
	instructor, err := uc.instructorRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			uc.logger.Warn("AssignReservation: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("AssignReservation: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}
	if !instructor.Active {
		uc.logger.Warn("AssignReservation: instructor id=%d is inactive", req.InstructorID)
		return nil, ErrInstructorInactive
	}

	// 5. Загружаем площадку и транспорт, если они предложены
	if _, err := uc.loadSite(ctx, req.SiteID, activity); err != nil {
		return nil, err
	}

	vehicle, err := uc.loadVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	// 6. Обязательные поля метаданных участников - ошибка конфигурации
	// тенанта обрывает попытку до проверок ограничений
	if err := scheduling.CheckRequiredFields(activity, reservation); err != nil {
		uc.logger.Warn("AssignReservation: required fields check failed: %v", err)
		return nil, err
	}

	// 7. Проверка квалификации - fail fast с именованной причиной
	if err := scheduling.CheckQualification(instructor, activity, reservation.AddOns); err != nil {
		uc.logger.Warn("AssignReservation: qualification check failed: %v", err)
		return nil, err
	}

	// 8. Проверка окна доступности инструктора
	if err := scheduling.CheckAvailability(instructor, req.Date, req.StartTime); err != nil {
		uc.logger.Warn("AssignReservation: availability check failed: %v", err)
		return nil, err
	}

	// 9. Занятость инструктора на эту дату (читается под сериализуемой
	// транзакцией - конкурентный коммит в этот же набор строк не пройдет)
	instructorSessions, err := uc.sessionRepo.GetByInstructorAndDate(ctx, req.InstructorID, req.Date)
	if err != nil {
		uc.logger.Error("AssignReservation: failed to get instructor sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get instructor sessions: %v", ErrInternal, err)
	}

	// 10. Дневной лимит занятий
	if err := scheduling.CheckDailyLimit(instructorSessions, instructor, req.Date, activeSessions); err != nil {
		uc.logger.Warn("AssignReservation: daily limit check failed: %v", err)
		return nil, err
	}

	// 11. Минимальный перерыв между занятиями
	if err := scheduling.CheckBuffer(instructorSessions, instructor.ID, req.Date, req.StartTime, nil, uc.policy); err != nil {
		uc.logger.Warn("AssignReservation: buffer check failed: %v", err)
		return nil, err
	}

	// 12. Вместимость и грузоподъемность транспорта (обе проверки сразу)
	if vehicle != nil {
		vehicleSessions, err := uc.sessionRepo.GetByVehicleAndDate(ctx, vehicle.ID, req.Date)
		if err != nil {
			uc.logger.Error("AssignReservation: failed to get vehicle sessions: %v", err)
			return nil, fmt.Errorf("%w: failed to get vehicle sessions: %v", ErrInternal, err)
		}

		occupancy := scheduling.CountVehicleOccupancy(
			vehicleSessions, vehicle.ID, req.Date, req.StartTime, &reservation.ID, uc.policy)
		load := scheduling.ComputeReservationLoad(reservation, instructor, uc.policy)

		if err := scheduling.CheckVehicle(vehicle, load, occupancy); err != nil {
			uc.logger.Warn("AssignReservation: vehicle check failed: %v", err)
			return nil, err
		}
	}

	// 13. Все проверки пройдены - атомарно обновляем занятия и статус брони
	duration := activity.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	assignment := domain.SessionAssignment{
		InstructorID:    instructor.ID,
		SiteID:          req.SiteID,
		VehicleID:       req.VehicleID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
	}

	updated, err := uc.sessionRepo.AssignByReservation(ctx, reservation.ID, assignment)
	if err != nil {
		uc.logger.Error("AssignReservation: failed to assign sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to assign sessions: %v", ErrInternal, err)
	}

	if err := uc.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationScheduled); err != nil {
		uc.logger.Error("AssignReservation: failed to update reservation status: %v", err)
		return nil, fmt.Errorf("%w: failed to update reservation status: %v", ErrInternal, err)
	}

	return buildResponse(reservation, instructor.ID, req, updated), nil
}

// loadSite загружает и проверяет площадку, если она предложена
func (uc *UseCase) loadSite(ctx context.Context, siteID *int64, activity *domain.Activity) (*domain.Site, error) {
	if siteID == nil {
		return nil, nil
	}

	site, err := uc.siteRepo.GetSiteByID(ctx, *siteID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrSiteNotFound) {
			uc.logger.Warn("AssignReservation: site id=%d not found", *siteID)
			return nil, ErrSiteNotFound
		}
		uc.logger.Error("AssignReservation: failed to get site id=%d: %v", *siteID, err)
		return nil, fmt.Errorf("%w: failed to get site: %v", ErrInternal, err)
	}
	if !site.Active {
		uc.logger.Warn("AssignReservation: site id=%d is inactive", *siteID)
		return nil, ErrSiteNotFound
	}
	if !site.SupportsActivityType(activity.ActivityType) {
		uc.logger.Warn("AssignReservation: site id=%d does not host activity type %q", *siteID, activity.ActivityType)
		return nil, ErrSiteNotSuitable
	}

	return site, nil
}

// loadVehicle загружает и проверяет транспорт, если он предложен
func (uc *UseCase) loadVehicle(ctx context.Context, vehicleID *int64) (*domain.Vehicle, error) {
	if vehicleID == nil {
		return nil, nil
	}

	vehicle, err := uc.vehicleRepo.GetVehicleByID(ctx, *vehicleID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrVehicleNotFound) {
			uc.logger.Warn("AssignReservation: vehicle id=%d not found", *vehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("AssignReservation: failed to get vehicle id=%d: %v", *vehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if !vehicle.Active {
		uc.logger.Warn("AssignReservation: vehicle id=%d is inactive", *vehicleID)
		return nil, ErrVehicleInactive
	}

	return vehicle, nil
}

// buildResponse собирает ответ из обновленных занятий
func buildResponse(reservation *domain.Reservation, instructorID int64, req *Request, sessions []*domain.ActivitySession) *Response {
	scheduled := make([]ScheduledSession, 0, len(sessions))
	for _, session := range sessions {
		scheduled = append(scheduled, ScheduledSession{
			ID:              session.ID,
			Date:            session.Date,
			StartTime:       session.StartTime,
			DurationMinutes: session.DurationMinutes,
			Status:          string(session.Status),
		})
	}

	return &Response{
		ReservationID: reservation.ID,
		PublicID:      reservation.PublicID,
		Status:        string(domain.ReservationScheduled),
		InstructorID:  instructorID,
		SiteID:        req.SiteID,
		VehicleID:     req.VehicleID,
		Sessions:      scheduled,
	}
}
