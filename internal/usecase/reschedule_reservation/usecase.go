package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	reservationRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/reservation"
)

// Request модель запроса на перенос брони
type Request struct {
	ReservationID int64 // ID брони
	CompanyID     int64 // ID компании (tenant scope)
}

// Response модель ответа: бронь возвращена в pending и готова к новому назначению
type Response struct {
	ReservationID int64
	Status        string
	SessionIDs    []int64
}

// UseCase use case переноса брони: снимает закоммиченное назначение
// (scheduled → rescheduled → pending), после чего бронь может быть
// назначена заново через assign_reservation
type UseCase struct {
	reservationRepo ReservationRepository
	sessionRepo     SessionRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет перенос брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: reservation=%d, company=%d", req.ReservationID, req.CompanyID)

	if req.ReservationID <= 0 || req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and companyID must be positive", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if reservation.CompanyID != req.CompanyID {
			uc.logger.Warn("RescheduleReservation: reservation id=%d does not belong to company=%d",
				req.ReservationID, req.CompanyID)
			return ErrReservationNotFound
		}

		if !reservation.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d has status=%s, cannot be rescheduled",
				req.ReservationID, reservation.Status)
			return ErrNotReschedulable
		}

		// Снимаем назначение со всех занятий брони одним атомарным обновлением
		sessions, err := uc.sessionRepo.ClearAssignmentByReservation(txCtx, reservation.ID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to clear assignments: %v", err)
			return fmt.Errorf("%w: failed to clear assignments: %v", ErrInternal, err)
		}

		// Бронь проходит через rescheduled и возвращается в pending -
		// точка повторного входа для нового назначения
		if err := uc.reservationRepo.UpdateStatus(txCtx, reservation.ID, domain.ReservationPending); err != nil {
			uc.logger.Error("RescheduleReservation: failed to update reservation status: %v", err)
			return fmt.Errorf("%w: failed to update reservation status: %v", ErrInternal, err)
		}

		sessionIDs := make([]int64, 0, len(sessions))
		for _, session := range sessions {
			sessionIDs = append(sessionIDs, session.ID)
		}

		result = &Response{
			ReservationID: reservation.ID,
			Status:        string(domain.ReservationPending),
			SessionIDs:    sessionIDs,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: reservation=%d returned to pending, %d sessions cleared",
		req.ReservationID, len(result.SessionIDs))

	return result, nil
}
