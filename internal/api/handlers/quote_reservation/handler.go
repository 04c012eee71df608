package quote_reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	quoteReservation "github.com/dkomnin/AVB-SchedulingService/internal/usecase/quote_reservation"
)

const (
	msgInvalidActivityID       = "некорректный ID активности"
	msgInvalidCompanyID        = "некорректный параметр companyId"
	msgInvalidParticipants     = "некорректный параметр participants"
	msgActivityNotFound        = "активность не найдена"
	msgParticipantsOutOfBounds = "число участников вне границ активности"
	msgPricingConfigError      = "некорректная конфигурация ценообразования"
)

type QuoteReservationUseCase interface {
	Execute(ctx context.Context, req *quoteReservation.Request) (*quoteReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ActivityID       int64   `json:"activityId"`
	ActivityName     string  `json:"activityName"`
	ParticipantCount int     `json:"participantCount"`
	BaseAmount       float64 `json:"baseAmount"`
	PricingType      string  `json:"pricingType"`
}

type Handler struct {
	useCase QuoteReservationUseCase
	logger  Logger
}

func NewHandler(useCase QuoteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/quote?companyId=1&participants=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID, err := strconv.ParseInt(vars["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/quote - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	companyID, err := strconv.ParseInt(r.URL.Query().Get("companyId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/quote - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	participants, err := strconv.Atoi(r.URL.Query().Get("participants"))
	if err != nil {
		h.logger.Warn("GET /activities/{id}/quote - Invalid participants: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipants)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quoteReservation.Request{
		ActivityID:       activityID,
		CompanyID:        companyID,
		ParticipantCount: participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteReservation.ErrActivityNotFound):
			h.logger.Warn("GET /activities/{id}/quote - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, quoteReservation.ErrInvalidParticipantCount):
			h.logger.Warn("GET /activities/{id}/quote - Participants out of bounds: activity_id=%d, participants=%d",
				activityID, participants)
			handlers.RespondBadRequest(w, msgParticipantsOutOfBounds)

		case errors.Is(err, quoteReservation.ErrInvalidInput):
			h.logger.Warn("GET /activities/{id}/quote - Invalid input: activity_id=%d, error=%v", activityID, err)
			handlers.RespondBadRequest(w, msgInvalidParticipants)

		default:
			if reason, ok := scheduling.ReasonOf(err); ok && reason == scheduling.ReasonConfigError {
				h.logger.Error("GET /activities/{id}/quote - Pricing config error: activity_id=%d, error=%v", activityID, err)
				handlers.RespondError(w, http.StatusUnprocessableEntity, msgPricingConfigError)
				return
			}

			h.logger.Error("GET /activities/{id}/quote - Failed to quote: activity_id=%d, error=%v", activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activities/{id}/quote - Quote computed: activity_id=%d, participants=%d, amount=%.2f",
		activityID, participants, result.BaseAmount)
	handlers.RespondJSON(w, http.StatusOK, &QuoteResponse{
		ActivityID:       result.ActivityID,
		ActivityName:     result.ActivityName,
		ParticipantCount: result.ParticipantCount,
		BaseAmount:       result.BaseAmount,
		PricingType:      result.PricingType,
	})
}
