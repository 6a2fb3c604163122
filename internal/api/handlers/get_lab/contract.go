package get_lab

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

type LabService interface {
	Get(ctx context.Context, labID int64) (*models.LabDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
