package get_student_reservations

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetStudentReservations(ctx context.Context, req *models.GetStudentReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
