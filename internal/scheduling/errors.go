package scheduling

import (
	"errors"
	"fmt"
	"strings"
)

// Reason машиночитаемый код причины отказа в назначении
type Reason string

const (
	// ReasonQualification инструктор не подходит по типу активности или сертификатам
	ReasonQualification Reason = "qualification"

	// ReasonAvailability запрошенное время вне окна доступности инструктора
	ReasonAvailability Reason = "availability"

	// ReasonDailyLimit достигнут дневной лимит занятий инструктора
	ReasonDailyLimit Reason = "daily_limit"

	// ReasonBufferTime недостаточный перерыв между занятиями инструктора
	ReasonBufferTime Reason = "buffer_time"

	// ReasonCapacity недостаточно посадочных мест в транспорте
	ReasonCapacity Reason = "capacity"

	// ReasonWeight превышен допустимый вес транспорта
	ReasonWeight Reason = "weight"

	// ReasonConfigError некорректные данные конфигурации тенанта
	// (неизвестная стратегия ценообразования, битый список тарифных ступеней)
	ReasonConfigError Reason = "config_error"

	// ReasonConflict конфликт конкурентных назначений, обнаруженный при
	// коммите транзакции; вызывающая сторона должна повторить запрос
	ReasonConflict Reason = "conflict"
)

// Error структурированный отказ в назначении
// Нарушение ограничений - это ожидаемый результат проверки конкретного
// предложенного назначения, а не исключительная ситуация: вызывающая
// сторона показывает его оператору, выбирающему другой слот или ресурс
type Error struct {
	Reason Reason
	Detail string
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	return fmt.Sprintf("scheduling: %s: %s", e.Reason, e.Detail)
}

// NewError создает отказ с указанной причиной
func NewError(reason Reason, format string, v ...interface{}) *Error {
	return &Error{Reason: reason, Detail: fmt.Sprintf(format, v...)}
}

// Errors список отказов - используется проверками транспорта, которые
// сообщают все нарушения сразу, а не прерываются на первом
type Errors []*Error

// Error реализует интерфейс error
func (e Errors) Error() string {
	details := make([]string, len(e))
	for i, err := range e {
		details[i] = fmt.Sprintf("%s: %s", err.Reason, err.Detail)
	}
	return "scheduling: " + strings.Join(details, "; ")
}

// ReasonOf извлекает код причины из ошибки
// Для списка отказов возвращает причину первого
func ReasonOf(err error) (Reason, bool) {
	var single *Error
	if errors.As(err, &single) {
		return single.Reason, true
	}

	var multi Errors
	if errors.As(err, &multi) && len(multi) > 0 {
		return multi[0].Reason, true
	}

	return "", false
}

// IsConstraintViolation возвращает true, если ошибка - это отказ по
// бизнес-ограничению (а не ошибка конфигурации или инфраструктуры)
func IsConstraintViolation(err error) bool {
	reason, ok := ReasonOf(err)
	if !ok {
		return false
	}
	return reason != ReasonConfigError && reason != ReasonConflict
}
