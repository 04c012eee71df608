package models

import (
	"fmt"
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// SessionView представление занятия в ответе сервиса
type SessionView struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	InstructorID    *int64  `json:"instructorId,omitempty"`
	SiteID          *int64  `json:"siteId,omitempty"`
	VehicleID       *int64  `json:"vehicleId,omitempty"`
	Status          string  `json:"status"`
}

// ReservationResponse представление брони в ответе сервиса
type ReservationResponse struct {
	ID               int64         `json:"id"`
	PublicID         string        `json:"publicId"`
	CompanyID        int64         `json:"companyId"`
	UserID           int64         `json:"userId"`
	ActivityID       int64         `json:"activityId"`
	ActivityName     string        `json:"activityName"`
	ParticipantCount int           `json:"participantCount"`
	AddOns           []string      `json:"addOns,omitempty"`
	Status           string        `json:"status"`
	BaseAmount       float64       `json:"baseAmount"`
	Notes            *string       `json:"notes,omitempty"`
	Sessions         []SessionView `json:"sessions,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// GetCompanyReservationsRequest запрос списка броней компании
type GetCompanyReservationsRequest struct {
	CompanyID       int64
	ActivityID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	UserID int64
	Reason string
}

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(reservation *domain.Reservation, sessions []*domain.ActivitySession) *ReservationResponse {
	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		view := SessionView{
			ID:              session.ID,
			Date:            session.Date.Format(domain.DateFormat),
			DurationMinutes: session.DurationMinutes,
			InstructorID:    session.InstructorID,
			SiteID:          session.SiteID,
			VehicleID:       session.VehicleID,
			Status:          string(session.Status),
		}
		if !session.StartTime.IsZero() {
			s := session.StartTime.String()
			view.StartTime = &s
		}
		views = append(views, view)
	}

	return &ReservationResponse{
		ID:               reservation.ID,
		PublicID:         reservation.PublicID.String(),
		CompanyID:        reservation.CompanyID,
		UserID:           reservation.UserID,
		ActivityID:       reservation.ActivityID,
		ActivityName:     reservation.ActivityName,
		ParticipantCount: reservation.ParticipantCount,
		AddOns:           reservation.AddOns,
		Status:           string(reservation.Status),
		BaseAmount:       reservation.BaseAmount,
		Notes:            reservation.Notes,
		Sessions:         views,
		CreatedAt:        reservation.CreatedAt,
		UpdatedAt:        reservation.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список броней
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]*ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		items = append(items, FromDomainReservation(reservation, nil))
	}
	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}

// ToDomainReservationStatus конвертирует строку в доменный статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	switch status {
	case domain.ReservationPending,
		domain.ReservationAuthorized,
		domain.ReservationScheduled,
		domain.ReservationConfirmed,
		domain.ReservationCompleted,
		domain.ReservationCancelled,
		domain.ReservationRescheduled,
		domain.ReservationRefunded:
		return status, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetCompanyReservationsRequest) ToDomainFilter() (domain.CompanyReservationsFilter, error) {
	filter := domain.CompanyReservationsFilter{
		CompanyID:       r.CompanyID,
		ActivityID:      r.ActivityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return domain.CompanyReservationsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}
