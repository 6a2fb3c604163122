package get_lab_schedule

import (
	"context"

	getLabSchedule "github.com/ekarahan/LCR-ReservationService/internal/usecase/get_lab_schedule"
)

type GetLabScheduleUseCase interface {
	Execute(ctx context.Context, req *getLabSchedule.Request) (*getLabSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
