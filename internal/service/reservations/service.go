package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	reservationRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/reservation"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/reservations/models"
)

// Service сервис для чтения и отмены броней
// Назначение и перенос живут в отдельных use case-ах; здесь - плоские
// операции без transaction manager-а
type Service struct {
	reservationRepo ReservationRepository
	sessionRepo     SessionRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	sessionRepo SessionRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID вместе с её занятиями
// Пользователь видит только собственную бронь
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	sessions, err := s.sessionRepo.GetByReservationID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get sessions for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - sessions error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d with %d sessions", id, len(sessions))
	return models.FromDomainReservation(reservation, sessions), nil
}

// GetCompanyReservations получает брони компании с гибкой фильтрацией
// Поддерживает фильтрацию по активности, периоду, статусу и включению
// неактивных броней. Tenant scope задается вызывающей стороной
func (s *Service) GetCompanyReservations(ctx context.Context, req *models.GetCompanyReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCompanyReservations: fetching reservations for company=%d", req.CompanyID)

	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyReservations: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyReservations: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyReservations: successfully fetched %d reservations for company=%d",
		len(reservations), req.CompanyID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь пользователя вместе с её занятиями
// Платежные и уведомительные side effect-ы запускает вызывающая сторона
// после успешной отмены, не этот сервис
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d has status=%s, cannot be cancelled",
			reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, domain.ReservationCancelled, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.sessionRepo.CancelByReservation(ctx, reservationID); err != nil {
		s.logger.Error("Cancel: failed to cancel sessions of reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - sessions error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}
