package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrNotReschedulable возвращается, когда бронь в статусе, не допускающем перенос
	ErrNotReschedulable = errors.New("reschedule_reservation: reservation cannot be rescheduled in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
