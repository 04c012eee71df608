package scheduling

import (
	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// CheckRequiredFields проверяет, что у каждого участника брони заполнены
// поля метаданных, требуемые настройками активности. Отсутствующее поле -
// это проблема данных тенанта (config_error), а не нарушение ограничения
// планирования: такая бронь не станет валидной от выбора другого слота
func CheckRequiredFields(activity *domain.Activity, reservation *domain.Reservation) error {
	if activity.Constraints == nil || len(activity.Constraints.RequiredFields) == 0 {
		return nil
	}

	for i, participant := range reservation.Participants {
		for _, field := range activity.Constraints.RequiredFields {
			if _, ok := participant.Metadata[field]; !ok {
				return NewError(ReasonConfigError,
					"reservation %d participant %d is missing required field %q",
					reservation.ID, i+1, field)
			}
		}
	}

	return nil
}
