package models

import (
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// InstructorResponse представление инструктора в ответе сервиса
type InstructorResponse struct {
	ID                int64    `json:"id"`
	CompanyID         int64    `json:"companyId"`
	Name              string   `json:"name"`
	ActivityTypes     []string `json:"activityTypes"`
	Certifications    []string `json:"certifications,omitempty"`
	Weekdays          []int    `json:"weekdays"`
	Hours             []int    `json:"hours,omitempty"`
	MaxSessionsPerDay int      `json:"maxSessionsPerDay"`
	Active            bool     `json:"active"`
}

// InstructorListResponse список инструкторов
type InstructorListResponse struct {
	Instructors []*InstructorResponse `json:"instructors"`
	Total       int                   `json:"total"`
}

// VehicleResponse представление транспорта в ответе сервиса
type VehicleResponse struct {
	ID             int64   `json:"id"`
	CompanyID      int64   `json:"companyId"`
	Name           string  `json:"name"`
	CapacitySeats  int     `json:"capacitySeats"`
	PassengerSeats int     `json:"passengerSeats"`
	MaxWeightKg    float64 `json:"maxWeightKg"`
	Active         bool    `json:"active"`
}

// VehicleListResponse список транспорта
type VehicleListResponse struct {
	Vehicles []*VehicleResponse `json:"vehicles"`
	Total    int                `json:"total"`
}

// SiteResponse представление площадки в ответе сервиса
type SiteResponse struct {
	ID            int64    `json:"id"`
	CompanyID     int64    `json:"companyId"`
	Name          string   `json:"name"`
	ActivityTypes []string `json:"activityTypes"`
	Active        bool     `json:"active"`
}

// SiteListResponse список площадок
type SiteListResponse struct {
	Sites []*SiteResponse `json:"sites"`
	Total int             `json:"total"`
}

// ScheduleEntry одно занятие в расписании инструктора на день
type ScheduleEntry struct {
	SessionID       int64   `json:"sessionId"`
	ReservationID   int64   `json:"reservationId"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
}

// InstructorScheduleResponse расписание инструктора на дату
type InstructorScheduleResponse struct {
	InstructorID int64           `json:"instructorId"`
	Date         string          `json:"date"`
	Sessions     []ScheduleEntry `json:"sessions"`
	Assigned     int             `json:"assigned"`
	Limit        int             `json:"limit"`
}

// FromDomainInstructor конвертирует доменную модель инструктора
func FromDomainInstructor(instructor *domain.Instructor) *InstructorResponse {
	return &InstructorResponse{
		ID:                instructor.ID,
		CompanyID:         instructor.CompanyID,
		Name:              instructor.Name,
		ActivityTypes:     instructor.ActivityTypes,
		Certifications:    instructor.Certifications,
		Weekdays:          instructor.Availability.Weekdays,
		Hours:             instructor.Availability.Hours,
		MaxSessionsPerDay: instructor.MaxSessionsPerDay,
		Active:            instructor.Active,
	}
}

// FromDomainInstructorList конвертирует список инструкторов
func FromDomainInstructorList(instructors []*domain.Instructor) *InstructorListResponse {
	items := make([]*InstructorResponse, 0, len(instructors))
	for _, instructor := range instructors {
		items = append(items, FromDomainInstructor(instructor))
	}
	return &InstructorListResponse{Instructors: items, Total: len(items)}
}

// FromDomainVehicleList конвертирует список транспорта
func FromDomainVehicleList(vehicles []*domain.Vehicle) *VehicleListResponse {
	items := make([]*VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		items = append(items, &VehicleResponse{
			ID:             vehicle.ID,
			CompanyID:      vehicle.CompanyID,
			Name:           vehicle.Name,
			CapacitySeats:  vehicle.CapacitySeats,
			PassengerSeats: vehicle.PassengerSeats(),
			MaxWeightKg:    vehicle.MaxWeightKg,
			Active:         vehicle.Active,
		})
	}
	return &VehicleListResponse{Vehicles: items, Total: len(items)}
}

// FromDomainSiteList конвертирует список площадок
func FromDomainSiteList(sites []*domain.Site) *SiteListResponse {
	items := make([]*SiteResponse, 0, len(sites))
	for _, site := range sites {
		items = append(items, &SiteResponse{
			ID:            site.ID,
			CompanyID:     site.CompanyID,
			Name:          site.Name,
			ActivityTypes: site.ActivityTypes,
			Active:        site.Active,
		})
	}
	return &SiteListResponse{Sites: items, Total: len(items)}
}

// BuildInstructorSchedule собирает расписание инструктора на дату
func BuildInstructorSchedule(instructor *domain.Instructor, date time.Time, sessions []*domain.ActivitySession) *InstructorScheduleResponse {
	entries := make([]ScheduleEntry, 0, len(sessions))
	assigned := 0

	for _, session := range sessions {
		entry := ScheduleEntry{
			SessionID:       session.ID,
			ReservationID:   session.ReservationID,
			DurationMinutes: session.DurationMinutes,
			Status:          string(session.Status),
		}
		if !session.StartTime.IsZero() {
			s := session.StartTime.String()
			entry.StartTime = &s
		}
		if session.IsActive() {
			assigned++
		}
		entries = append(entries, entry)
	}

	limit := instructor.MaxSessionsPerDay
	if limit <= 0 {
		limit = domain.DefaultMaxSessionsPerDay
	}

	return &InstructorScheduleResponse{
		InstructorID: instructor.ID,
		Date:         date.Format(domain.DateFormat),
		Sessions:     entries,
		Assigned:     assigned,
		Limit:        limit,
	}
}
