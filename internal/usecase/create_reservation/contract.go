package create_reservation

import (
	"context"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/internal/integrations/accountservice"
)

// ReservationRepository интерфейс репозитория резервирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// LabRepository интерфейс репозитория лабораторий и компьютеров
type LabRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
	GetComputerByID(ctx context.Context, id int64) (*domain.Computer, error)
}

// StudentRepository интерфейс локального реестра студентов
type StudentRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
}

// AccountServiceClient интерфейс клиента справочника учетных записей
type AccountServiceClient interface {
	GetAccount(ctx context.Context, email string) (*accountservice.Account, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
