package quote_reservation

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("quote_reservation: activity not found")

	// ErrInvalidParticipantCount возвращается, когда число участников вне
	// границ, заданных активностью
	ErrInvalidParticipantCount = errors.New("quote_reservation: participant count out of activity bounds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_reservation: internal error")
)
