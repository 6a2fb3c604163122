package list_labs

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

type LabService interface {
	List(ctx context.Context) (*models.LabListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
