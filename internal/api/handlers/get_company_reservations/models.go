package get_company_reservations

import (
	"strconv"
	"time"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	"github.com/dkomnin/AVB-SchedulingService/internal/service/reservations/models"
)

// ToServiceRequest парсит query параметры в запрос сервиса
func ToServiceRequest(companyID int64, activityIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetCompanyReservationsRequest, error) {
	req := &models.GetCompanyReservationsRequest{
		CompanyID: companyID,
	}

	if activityIDStr != "" {
		activityID, err := strconv.ParseInt(activityIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ActivityID = &activityID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
