package get_lab_schedule

import (
	"context"
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

// LabRepository интерфейс репозитория лабораторий
type LabRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
	ListComputersByLab(ctx context.Context, labID int64) ([]*domain.Computer, error)
}

// ReservationRepository интерфейс репозитория резервирований
type ReservationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
