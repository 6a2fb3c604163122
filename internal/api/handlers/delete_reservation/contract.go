package delete_reservation

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Delete(ctx context.Context, reservationID int64, requester models.Requester) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
