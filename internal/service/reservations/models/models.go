package models

import (
	"errors"
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Requester явная идентичность запрашивающего из identity-заголовков
type Requester struct {
	Email string
	Role  domain.Role
}

// IsAdmin reports whether the requester has the admin role.
func (r Requester) IsAdmin() bool {
	return r.Role == domain.RoleAdmin
}

// Request модели

// GetStudentReservationsRequest запрос истории резервирований студента
type GetStudentReservationsRequest struct {
	Requester    Requester
	StudentEmail string
	Status       *string // Фильтр по статусу (опционально)
}

// GetLabReservationsRequest запрос резервирований лаборатории
type GetLabReservationsRequest struct {
	Requester Requester
	LabID     int64
	Date      *time.Time // Фильтр по дате (опционально)
	Status    *string    // Фильтр по статусу (опционально)
}

// UpdateStatusRequest запрос перевода резервирования в новый статус
type UpdateStatusRequest struct {
	Requester Requester
	Status    string // "approved" | "rejected"
}

// Response модели

// ReservationResponse ответ с данными резервирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	StudentEmail    *string `json:"studentEmail,omitempty"`
	ComputerID      int64   `json:"computerId"`
	LabID           int64   `json:"labId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:30"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ReservationListResponse список резервирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              res.ID,
		StudentEmail:    res.StudentEmail,
		ComputerID:      res.ComputerID,
		LabID:           res.LabID,
		Date:            res.Interval.Date.Format(domain.DateFormat),
		StartTime:       res.Interval.Start.String(),
		EndTime:         res.Interval.End.String(),
		DurationMinutes: res.Interval.DurationMinutes(),
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       res.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, res := range reservations {
		out[i] = FromDomainReservation(res)
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

// ToDomainReservationStatus валидирует и конвертирует строку статуса
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
