package delete_lab

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

type LabService interface {
	Delete(ctx context.Context, labID int64, requester models.Requester) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
