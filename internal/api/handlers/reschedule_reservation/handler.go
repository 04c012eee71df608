package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	rescheduleReservation "github.com/dkomnin/AVB-SchedulingService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReservationNotFound  = "бронь не найдена"
	msgNotReschedulable     = "бронь не может быть перенесена в текущем статусе"
	msgInvalidInput         = "некорректные входные данные"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	CompanyID int64 `json:"companyId"`
}

// RescheduleReservationResponse HTTP response model
type RescheduleReservationResponse struct {
	ReservationID int64   `json:"reservationId"`
	Status        string  `json:"status"`
	SessionIDs    []int64 `json:"sessionIds"`
}

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/reschedule
//
// Снимает текущее назначение: занятия возвращаются в pending, бронь
// готова к новому assign. Клиент вызывает assign со свежими параметрами
// отдельным запросом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleReservation.Request{
		ReservationID: reservationID,
		CompanyID:     req.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, rescheduleReservation.ErrNotReschedulable):
			h.logger.Warn("POST /reservations/{id}/reschedule - Not reschedulable: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/reschedule - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/reschedule - Reservation rescheduled: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, &RescheduleReservationResponse{
		ReservationID: result.ReservationID,
		Status:        result.Status,
		SessionIDs:    result.SessionIDs,
	})
}
