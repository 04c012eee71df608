package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationPending     ReservationStatus = "pending"
	ReservationAuthorized  ReservationStatus = "authorized"
	ReservationScheduled   ReservationStatus = "scheduled"
	ReservationConfirmed   ReservationStatus = "confirmed"
	ReservationCompleted   ReservationStatus = "completed"
	ReservationCancelled   ReservationStatus = "cancelled"
	ReservationRescheduled ReservationStatus = "rescheduled"
	ReservationRefunded    ReservationStatus = "refunded"
)

// Participant holds per-participant data attached to a reservation.
// Weight is optional; the scheduling engine falls back to a configured
// default when it is missing.
type Participant struct {
	Name     *string
	WeightKg *float64
	Metadata map[string]string
}

// Reservation represents a booking request for an activity.
// A reservation owns zero or more activity sessions, which are the
// actual units scheduled against an instructor and a time slot.
type Reservation struct {
	ID               int64
	PublicID         uuid.UUID
	CompanyID        int64
	UserID           int64
	ActivityID       int64
	ParticipantCount int
	Participants     []Participant
	AddOns           []string
	Status           ReservationStatus

	// Denormalized data for history
	ActivityName string
	BaseAmount   float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies resources
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationCancelled &&
		r.Status != ReservationRefunded &&
		r.Status != ReservationCompleted
}

// CanBeScheduled returns true if the reservation may receive an assignment
func (r *Reservation) CanBeScheduled() bool {
	return r.Status == ReservationPending || r.Status == ReservationAuthorized
}

// CanBeRescheduled returns true if a committed assignment may be cleared
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == ReservationScheduled || r.Status == ReservationConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationPending ||
		r.Status == ReservationAuthorized ||
		r.Status == ReservationScheduled ||
		r.Status == ReservationConfirmed
}

// IsCancelled returns true if the reservation has been cancelled or refunded
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled || r.Status == ReservationRefunded
}

// CompanyReservationsFilter filters reservations of a company
type CompanyReservationsFilter struct {
	CompanyID       int64
	ActivityID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeInactive bool
}
