package domain

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// SessionStatus represents the status of an activity session
type SessionStatus string

const (
	SessionPending     SessionStatus = "pending"
	SessionScheduled   SessionStatus = "scheduled"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// ActivitySession is one instructor-facing unit of work belonging to a
// reservation. Depending on the activity's session strategy a reservation
// owns one session per participant or one session for the whole group.
type ActivitySession struct {
	ID            int64
	ReservationID int64
	ActivityID    int64
	CompanyID     int64

	Date            time.Time        // calendar date, no time component
	StartTime       types.TimeString // "HH:MM", empty until scheduled
	DurationMinutes int

	InstructorID *int64 // nil until scheduled
	SiteID       *int64
	VehicleID    *int64

	ParticipantCount int
	WeightKg         *float64 // participant weight for per-participant sessions
	Metadata         map[string]string

	Status SessionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionAssignment is the set of fields the orchestrator writes to every
// session of a reservation when an assignment is committed
type SessionAssignment struct {
	InstructorID    int64
	SiteID          *int64
	VehicleID       *int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// IsActive returns true if the session still occupies its instructor and
// vehicle (cancelled and rescheduled sessions do not count towards occupancy)
func (s *ActivitySession) IsActive() bool {
	return s.Status != SessionCancelled && s.Status != SessionRescheduled
}

// IsAssigned returns true if the session has an instructor and a start time
func (s *ActivitySession) IsAssigned() bool {
	return s.InstructorID != nil && !s.StartTime.IsZero()
}

// IsTerminal returns true if the session can no longer be modified
func (s *ActivitySession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}

// SameDay returns true if the session is scheduled on the given calendar date
func (s *ActivitySession) SameDay(date time.Time) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
