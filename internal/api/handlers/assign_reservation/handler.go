package assign_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	assignReservation "github.com/dkomnin/AVB-SchedulingService/internal/usecase/assign_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты занятия, ожидается YYYY-MM-DD"
	msgReservationNotFound  = "бронь не найдена"
	msgActivityNotFound     = "активность не найдена"
	msgInstructorNotFound   = "инструктор не найден"
	msgInstructorInactive   = "инструктор неактивен"
	msgVehicleNotFound      = "транспорт не найден"
	msgVehicleInactive      = "транспорт неактивен"
	msgSiteNotFound         = "площадка не найдена"
	msgSiteNotSuitable      = "площадка не поддерживает этот тип активности"
	msgNotSchedulable       = "бронь не может быть назначена в текущем статусе"
	msgNoSessions           = "у брони нет занятий для назначения"
	msgConstraintViolated   = "назначение нарушает ограничения планирования"
	msgConfigError          = "некорректная конфигурация компании"
	msgAssignmentConflict   = "конкурентный конфликт назначения, повторите запрос"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	useCase AssignReservationUseCase
	logger  Logger
}

func NewHandler(useCase AssignReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/assign - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AssignReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/assign - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, reservationID, err)
		return
	}

	h.logger.Info("POST /reservations/{id}/assign - Reservation assigned: reservation_id=%d, instructor_id=%d, status=%s",
		reservationID, req.InstructorID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// respondError маппит ошибки use case на HTTP статусы.
// Нарушения ограничений планирования отдаются как 409 с машиночитаемыми
// кодами причин; ошибки конфигурации тенанта - как 422
func (h *Handler) respondError(w http.ResponseWriter, reservationID int64, err error) {
	switch {
	case errors.Is(err, assignReservation.ErrReservationNotFound):
		h.logger.Warn("POST /reservations/{id}/assign - Reservation not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgReservationNotFound)

	case errors.Is(err, assignReservation.ErrActivityNotFound):
		h.logger.Warn("POST /reservations/{id}/assign - Activity not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgActivityNotFound)

	case errors.Is(err, assignReservation.ErrInstructorNotFound):
		h.logger.Warn("POST /reservations/{id}/assign - Instructor not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgInstructorNotFound)

	case errors.Is(err, assignReservation.ErrInstructorInactive):
		h.logger.Warn("POST /reservations/{id}/assign - Instructor inactive: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgInstructorInactive)

	case errors.Is(err, assignReservation.ErrVehicleNotFound):
		h.logger.Warn("POST /reservations/{id}/assign - Vehicle not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgVehicleNotFound)

	case errors.Is(err, assignReservation.ErrVehicleInactive):
		h.logger.Warn("POST /reservations/{id}/assign - Vehicle inactive: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgVehicleInactive)

	case errors.Is(err, assignReservation.ErrSiteNotFound):
		h.logger.Warn("POST /reservations/{id}/assign - Site not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgSiteNotFound)

	case errors.Is(err, assignReservation.ErrSiteNotSuitable):
		h.logger.Warn("POST /reservations/{id}/assign - Site not suitable: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgSiteNotSuitable)

	case errors.Is(err, assignReservation.ErrNotSchedulable):
		h.logger.Warn("POST /reservations/{id}/assign - Not schedulable: reservation_id=%d", reservationID)
		handlers.RespondError(w, http.StatusConflict, msgNotSchedulable)

	case errors.Is(err, assignReservation.ErrNoSessions):
		h.logger.Warn("POST /reservations/{id}/assign - No sessions: reservation_id=%d", reservationID)
		handlers.RespondError(w, http.StatusConflict, msgNoSessions)

	case errors.Is(err, assignReservation.ErrAssignmentConflict):
		h.logger.Warn("POST /reservations/{id}/assign - Assignment conflict: reservation_id=%d", reservationID)
		handlers.RespondError(w, http.StatusConflict, msgAssignmentConflict)

	case errors.Is(err, assignReservation.ErrInvalidInput):
		h.logger.Warn("POST /reservations/{id}/assign - Invalid input: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case scheduling.IsConstraintViolation(err):
		h.logger.Warn("POST /reservations/{id}/assign - Constraint violated: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondJSON(w, http.StatusConflict, FromSchedulingError(msgConstraintViolated, err))

	default:
		if reason, ok := scheduling.ReasonOf(err); ok && reason == scheduling.ReasonConfigError {
			h.logger.Error("POST /reservations/{id}/assign - Tenant config error: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromSchedulingError(msgConfigError, err))
			return
		}

		h.logger.Error("POST /reservations/{id}/assign - Failed to assign reservation: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
	}
}
