package quote_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	activityRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/activity"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
)

// Request модель запроса на расчет стоимости
type Request struct {
	ActivityID       int64 // ID активности
	CompanyID        int64 // ID компании (tenant scope)
	ParticipantCount int   // число участников
}

// Response модель ответа с расчетом
type Response struct {
	ActivityID       int64
	ActivityName     string
	ParticipantCount int
	BaseAmount       float64
	PricingType      string
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UseCase use case расчета базовой стоимости брони по стратегии
// ценообразования активности. Расчет детерминирован: одинаковые входные
// данные всегда дают одинаковую сумму
type UseCase struct {
	activityRepo ActivityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(activityRepo ActivityRepository, logger Logger) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Execute выполняет расчет стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteReservation: activity=%d, company=%d, participants=%d",
		req.ActivityID, req.CompanyID, req.ParticipantCount)

	if req.ActivityID <= 0 || req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: activityID and companyID must be positive", ErrInvalidInput)
	}
	if req.ParticipantCount < domain.MinParticipantsPerReservation ||
		req.ParticipantCount > domain.MaxParticipantsPerReservation {
		return nil, fmt.Errorf("%w: participantCount must be between %d and %d",
			ErrInvalidInput, domain.MinParticipantsPerReservation, domain.MaxParticipantsPerReservation)
	}

	activity, err := uc.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("QuoteReservation: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("QuoteReservation: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}

	if activity.CompanyID != req.CompanyID || !activity.Active {
		uc.logger.Warn("QuoteReservation: activity id=%d not available for company=%d", req.ActivityID, req.CompanyID)
		return nil, ErrActivityNotFound
	}

	if req.ParticipantCount < activity.MinParticipants ||
		(activity.MaxParticipants > 0 && req.ParticipantCount > activity.MaxParticipants) {
		uc.logger.Warn("QuoteReservation: participant count %d out of bounds [%d, %d] for activity=%d",
			req.ParticipantCount, activity.MinParticipants, activity.MaxParticipants, req.ActivityID)
		return nil, fmt.Errorf("%w: got %d, allowed [%d, %d]",
			ErrInvalidParticipantCount, req.ParticipantCount, activity.MinParticipants, activity.MaxParticipants)
	}

	amount, err := scheduling.ComputeBaseAmount(activity, req.ParticipantCount)
	if err != nil {
		// Ошибка конфигурации тенанта - отдаем наверх как есть, handler
		// отличит её от конфликтов планирования по коду причины
		uc.logger.Warn("QuoteReservation: pricing failed for activity=%d: %v", req.ActivityID, err)
		return nil, err
	}

	uc.logger.Info("QuoteReservation: activity=%d, participants=%d, amount=%.2f",
		req.ActivityID, req.ParticipantCount, amount)

	return &Response{
		ActivityID:       activity.ID,
		ActivityName:     activity.Name,
		ParticipantCount: req.ParticipantCount,
		BaseAmount:       amount,
		PricingType:      string(activity.Pricing.Type),
	}, nil
}
