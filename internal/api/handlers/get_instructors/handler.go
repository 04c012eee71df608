package get_instructors

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/resources"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/resources/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidParams    = "некорректные параметры запроса"
)

type ResourceService interface {
	GetInstructors(ctx context.Context, companyID int64, onlyActive bool) (*models.InstructorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/instructors
// Query params: onlyActive (по умолчанию true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/instructors - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	onlyActive := true
	if onlyActiveStr := r.URL.Query().Get("onlyActive"); onlyActiveStr != "" {
		onlyActive, err = strconv.ParseBool(onlyActiveStr)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/instructors - Invalid onlyActive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.GetInstructors(r.Context(), companyID, onlyActive)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/instructors - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/instructors - Failed to get instructors: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/instructors - Instructors retrieved: company_id=%d, count=%d",
		companyID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
