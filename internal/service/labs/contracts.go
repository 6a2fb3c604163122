package labs

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

// LabRepository интерфейс репозитория лабораторий и компьютеров
type LabRepository interface {
	CreateLab(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error)
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
	List(ctx context.Context) ([]*domain.Laboratory, error)
	Delete(ctx context.Context, id int64) error
	AddManager(ctx context.Context, labID int64, email string) error
	RemoveManager(ctx context.Context, labID int64, email string) error
	CreateComputer(ctx context.Context, computer *domain.Computer) (*domain.Computer, error)
	GetComputerByID(ctx context.Context, id int64) (*domain.Computer, error)
	ListComputersByLab(ctx context.Context, labID int64) ([]*domain.Computer, error)
	DeleteComputer(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
