package get_company_reservations

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	"github.com/dkomnin/AVB-SchedulingService/internal/api/middleware"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/reservations"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/reservations/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidStatus    = "недопустимый статус брони"
)

type ReservationService interface {
	GetCompanyReservations(ctx context.Context, req *models.GetCompanyReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/reservations
// Query params: activityId, status, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/reservations - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(
		companyID,
		r.URL.Query().Get("activityId"),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("startDate"),
		r.URL.Query().Get("endDate"),
		r.URL.Query().Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCompanyReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("GET /companies/{id}/reservations - Invalid status: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/reservations - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/reservations - Failed to get reservations: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/reservations - Reservations retrieved: company_id=%d, user_id=%d, count=%d",
		companyID, userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
