package domain

// Default scheduling policy values
const (
	DefaultBufferMinutes             = 30
	DefaultRotationWindowMinutes     = 30
	DefaultParticipantWeightKg       = 80.0
	DefaultInstructorWeightKg        = 80.0
	DefaultDriverWeightKg            = 85.0
	DefaultSessionDurationMinutes    = 60
	DefaultMaxSessionsPerDay         = 8
)

// DriverSeats number of seats reserved for the driver in every vehicle
const DriverSeats = 1

// Business validation constants
const (
	MinParticipantsPerReservation = 1
	MaxParticipantsPerReservation = 50
	MinBufferMinutes              = 0
	MaxBufferMinutes              = 240
	MinRotationWindowMinutes      = 5
	MaxRotationWindowMinutes      = 240
	MaxNotesLength                = 500
	MaxCancellationReasonLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveSessionStatuses lists session statuses that do not count towards
// instructor and vehicle occupancy
var InactiveSessionStatuses = []SessionStatus{
	SessionCancelled,
	SessionRescheduled,
}

// ActiveReservationStatuses lists statuses of reservations that still hold
// resources
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationAuthorized,
	ReservationScheduled,
	ReservationConfirmed,
}
