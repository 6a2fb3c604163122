package reservations

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория резервирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// LabRepository интерфейс репозитория лабораторий
type LabRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
