package domain

import "time"

// Instructor is a staff resource that sessions get assigned to
type Instructor struct {
	ID                int64
	CompanyID         int64
	Name              string
	ActivityTypes     []string // activity types the instructor may teach
	Certifications    []string // certifications held
	Availability      AvailabilitySpec
	MaxSessionsPerDay int
	WeightKg          *float64 // used only for vehicle payload math
	Active            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeachesActivityType returns true if the instructor may teach the given type
func (i *Instructor) TeachesActivityType(activityType string) bool {
	for _, t := range i.ActivityTypes {
		if t == activityType {
			return true
		}
	}
	return false
}

// HoldsCertification returns true if the instructor holds the certification
func (i *Instructor) HoldsCertification(certification string) bool {
	for _, c := range i.Certifications {
		if c == certification {
			return true
		}
	}
	return false
}

// Vehicle is a transport resource with seat and payload limits.
// CapacitySeats includes the driver seat; the driver seat and the driver
// weight constant are subtracted during capacity and payload accounting.
type Vehicle struct {
	ID            int64
	CompanyID     int64
	Name          string
	CapacitySeats int
	MaxWeightKg   float64
	Active        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PassengerSeats returns the number of seats available for passengers
func (v *Vehicle) PassengerSeats() int {
	return v.CapacitySeats - DriverSeats
}

// Site is a location where activities take place
type Site struct {
	ID            int64
	CompanyID     int64
	Name          string
	ActivityTypes []string
	Active        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupportsActivityType returns true if the site hosts the given activity type
func (s *Site) SupportsActivityType(activityType string) bool {
	for _, t := range s.ActivityTypes {
		if t == activityType {
			return true
		}
	}
	return false
}
