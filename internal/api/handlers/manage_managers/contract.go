package manage_managers

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

type LabService interface {
	AddManager(ctx context.Context, labID int64, email string, requester models.Requester) error
	RemoveManager(ctx context.Context, labID int64, email string, requester models.Requester) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
