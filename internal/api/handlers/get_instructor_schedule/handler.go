package get_instructor_schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkomnin/AVB-SchedulingService/internal/api/handlers"
	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/resources"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/resources/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInstructorNotFound  = "инструктор не найден"
)

type ResourceService interface {
	GetInstructorSchedule(ctx context.Context, instructorID int64, date time.Time) (*models.InstructorScheduleResponse, error)
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

// Handle GET /api/v1/instructors/{instructorId}/schedule?date=2026-06-15
// Оператор использует расписание для выбора свободного слота перед назначением
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/schedule - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetInstructorSchedule(r.Context(), instructorID, date)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/schedule - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/schedule - Invalid input: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInstructorID)

		default:
			h.logger.Error("GET /instructors/{id}/schedule - Failed to get schedule: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/schedule - Schedule retrieved: instructor_id=%d, date=%s, sessions=%d",
		instructorID, result.Date, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
