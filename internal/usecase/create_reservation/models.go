package create_reservation

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Request модель запроса на создание резервирования.
// Идентичность запрашивающего передаётся явно: никакого неявного
// "текущего пользователя" внутри ядра нет.
type Request struct {
	RequesterEmail string           // Email запрашивающего (из identity-заголовков)
	RequesterRole  domain.Role      // Явная роль, проверяется по справочнику аккаунтов
	ComputerID     int64            // Целевой компьютер
	Date           time.Time        // Дата резервирования (без времени)
	StartTime      types.TimeString // Начало интервала, например "10:00"
	EndTime        types.TimeString // Конец интервала (полуоткрытый), например "11:30"
}

// Response модель ответа с созданным резервированием
type Response struct {
	ID              int64
	StudentEmail    *string
	ComputerID      int64
	LabID           int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		StudentEmail:    res.StudentEmail,
		ComputerID:      res.ComputerID,
		LabID:           res.LabID,
		Date:            res.Interval.Date,
		StartTime:       res.Interval.Start,
		EndTime:         res.Interval.End,
		DurationMinutes: res.Interval.DurationMinutes(),
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
