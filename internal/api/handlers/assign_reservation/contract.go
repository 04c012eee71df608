package assign_reservation

import (
	"context"

	assignReservation "github.com/dkomnin/AVB-SchedulingService/internal/usecase/assign_reservation"
)

type AssignReservationUseCase interface {
	Execute(ctx context.Context, req *assignReservation.Request) (*assignReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
