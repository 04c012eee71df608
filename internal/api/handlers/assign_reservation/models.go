package assign_reservation

import (
	"errors"
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	assignReservation "github.com/dkomnin/AVB-SchedulingService/internal/usecase/assign_reservation"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// AssignReservationRequest HTTP request model
type AssignReservationRequest struct {
	CompanyID    int64  `json:"companyId"`
	InstructorID int64  `json:"instructorId"`
	Date         string `json:"date"`      // "2026-06-15"
	StartTime    string `json:"startTime"` // "10:00"
	SiteID       *int64 `json:"siteId,omitempty"`
	VehicleID    *int64 `json:"vehicleId,omitempty"`
}

// ScheduledSessionResponse назначенное занятие в HTTP ответе
type ScheduledSessionResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// AssignReservationResponse HTTP response model
type AssignReservationResponse struct {
	ReservationID int64                      `json:"reservationId"`
	PublicID      string                     `json:"publicId"`
	Status        string                     `json:"status"`
	InstructorID  int64                      `json:"instructorId"`
	SiteID        *int64                     `json:"siteId,omitempty"`
	VehicleID     *int64                     `json:"vehicleId,omitempty"`
	Sessions      []ScheduledSessionResponse `json:"sessions"`
}

// ConstraintViolation одно нарушение ограничения планирования
type ConstraintViolation struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// ConstraintErrorResponse ответ с машиночитаемыми причинами отказа -
// оператор использует их для выбора другого слота или ресурса
type ConstraintErrorResponse struct {
	Error      string                `json:"error"`
	Violations []ConstraintViolation `json:"violations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignReservationRequest) ToUseCaseRequest(reservationID int64) (*assignReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &assignReservation.Request{
		ReservationID: reservationID,
		CompanyID:     r.CompanyID,
		InstructorID:  r.InstructorID,
		Date:          date,
		StartTime:     startTime,
		SiteID:        r.SiteID,
		VehicleID:     r.VehicleID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignReservation.Response) *AssignReservationResponse {
	sessions := make([]ScheduledSessionResponse, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		sessions = append(sessions, ScheduledSessionResponse{
			ID:              s.ID,
			Date:            s.Date.Format(domain.DateFormat),
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
		})
	}

	return &AssignReservationResponse{
		ReservationID: resp.ReservationID,
		PublicID:      resp.PublicID.String(),
		Status:        resp.Status,
		InstructorID:  resp.InstructorID,
		SiteID:        resp.SiteID,
		VehicleID:     resp.VehicleID,
		Sessions:      sessions,
	}
}

// FromSchedulingError конвертирует отказ планировщика в HTTP response
func FromSchedulingError(message string, err error) *ConstraintErrorResponse {
	resp := &ConstraintErrorResponse{Error: message}

	var multi scheduling.Errors
	if errors.As(err, &multi) {
		for _, v := range multi {
			resp.Violations = append(resp.Violations, ConstraintViolation{
				Reason: string(v.Reason),
				Detail: v.Detail,
			})
		}
		return resp
	}

	var single *scheduling.Error
	if errors.As(err, &single) {
		resp.Violations = append(resp.Violations, ConstraintViolation{
			Reason: string(single.Reason),
			Detail: single.Detail,
		})
	}

	return resp
}
