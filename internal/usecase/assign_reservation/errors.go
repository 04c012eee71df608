package assign_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("assign_reservation: reservation not found")

	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("assign_reservation: activity not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("assign_reservation: instructor not found")

	// ErrInstructorInactive возвращается при попытке назначить неактивного инструктора
	ErrInstructorInactive = errors.New("assign_reservation: instructor is inactive")

	// ErrVehicleNotFound возвращается, когда транспорт не найден
	ErrVehicleNotFound = errors.New("assign_reservation: vehicle not found")

	// ErrVehicleInactive возвращается при попытке назначить неактивный транспорт
	ErrVehicleInactive = errors.New("assign_reservation: vehicle is inactive")

	// ErrSiteNotFound возвращается, когда площадка не найдена
	ErrSiteNotFound = errors.New("assign_reservation: site not found")

	// ErrSiteNotSuitable возвращается, когда площадка не поддерживает тип активности
	ErrSiteNotSuitable = errors.New("assign_reservation: site does not host this activity type")

	// ErrNotSchedulable возвращается, когда бронь в статусе, не допускающем назначение
	ErrNotSchedulable = errors.New("assign_reservation: reservation cannot be scheduled in its current status")

	// ErrNoSessions возвращается, когда у брони нет ни одного активного занятия
	ErrNoSessions = errors.New("assign_reservation: reservation has no sessions to schedule")

	// ErrAssignmentConflict возвращается при конфликте сериализации -
	// два конкурентных назначения претендовали на одни и те же ресурсы.
	// Запрос должен быть повторен со свежими данными о занятости
	ErrAssignmentConflict = errors.New("assign_reservation: concurrent assignment conflict, retry with fresh data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_reservation: internal error")
)
