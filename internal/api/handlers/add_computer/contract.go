package add_computer

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

type LabService interface {
	AddComputer(ctx context.Context, req *models.AddComputerRequest) (*models.ComputerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
