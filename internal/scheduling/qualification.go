package scheduling

import (
	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
)

// CanTeach проверяет, что инструктор может вести занятия указанного типа
func CanTeach(instructor *domain.Instructor, activityType string) bool {
	return instructor.TeachesActivityType(activityType)
}

// MissingCertifications возвращает список требуемых сертификатов,
// которых нет у инструктора. Пустой список требований всегда проходит
func MissingCertifications(instructor *domain.Instructor, required []string) []string {
	var missing []string
	for _, cert := range required {
		if !instructor.HoldsCertification(cert) {
			missing = append(missing, cert)
		}
	}
	return missing
}

// CheckQualification проверяет квалификацию инструктора для активности
// с учетом сертификатов, требуемых выбранными дополнениями брони.
// Отказ именует недостающую квалификацию, а не сообщает обобщенное
// "инструктор недоступен"
func CheckQualification(instructor *domain.Instructor, activity *domain.Activity, addOns []string) error {
	if !CanTeach(instructor, activity.ActivityType) {
		return NewError(ReasonQualification,
			"instructor %d is not qualified for activity type %q", instructor.ID, activity.ActivityType)
	}

	if activity.Constraints == nil {
		return nil
	}

	required := activity.Constraints.RequiredCertificationsFor(addOns)
	if missing := MissingCertifications(instructor, required); len(missing) > 0 {
		return NewError(ReasonQualification,
			"instructor %d is missing required certifications: %v", instructor.ID, missing)
	}

	return nil
}
