package get_lab_reservations

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetLabReservations(ctx context.Context, req *models.GetLabReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
