package domain

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// AvailabilitySpec describes recurring availability of an instructor or
// resource: allowed ISO weekdays, optionally allowed hours, and exception
// dates that override availability to "unavailable" regardless of the
// weekday and hour rules. Pure data; IsAllowedAt has no side effects.
type AvailabilitySpec struct {
	// Weekdays holds allowed ISO weekday numbers (1 = Monday ... 7 = Sunday).
	// An empty set means no weekday is allowed.
	Weekdays []int `json:"weekdays"`

	// Hours holds allowed hours of day (0-23). A nil/empty set means any
	// hour of an allowed weekday is acceptable.
	Hours []int `json:"hours,omitempty"`

	// ExceptionDates lists dates ("2006-01-02") on which the instructor is
	// unavailable even if the weekday and hour rules would allow it.
	ExceptionDates []string `json:"exceptionDates,omitempty"`
}

// isoWeekday converts time.Weekday (Sunday = 0) to ISO numbering (Monday = 1)
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// IsAllowedAt reports whether the given instant is within the spec.
// A nil startTime evaluates the date on weekday membership only (day-level
// queries); a non-nil startTime additionally checks hour membership.
// Exception dates always take precedence.
func (a *AvailabilitySpec) IsAllowedAt(date time.Time, startTime *types.TimeString) bool {
	dateKey := date.Format("2006-01-02")
	for _, exception := range a.ExceptionDates {
		if exception == dateKey {
			return false
		}
	}

	weekdayAllowed := false
	weekday := isoWeekday(date.Weekday())
	for _, allowed := range a.Weekdays {
		if allowed == weekday {
			weekdayAllowed = true
			break
		}
	}
	if !weekdayAllowed {
		return false
	}

	if startTime == nil || len(a.Hours) == 0 {
		return true
	}

	hour := startTime.Hour()
	for _, allowed := range a.Hours {
		if allowed == hour {
			return true
		}
	}
	return false
}
