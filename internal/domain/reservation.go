package domain

import (
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "pending"
	StatusApproved ReservationStatus = "approved"
	StatusRejected ReservationStatus = "rejected"
)

// CanTransitionTo reports whether the status machine permits moving to next.
// Allowed transitions: pending -> approved, pending -> rejected and
// approved -> rejected (administrative override). Rejected is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusRejected
	default:
		return false
	}
}

// Reservation represents one request/grant of computer time in a laboratory
type Reservation struct {
	ID           int64
	StudentEmail *string // nil для прямых бронирований менеджера
	ComputerID   int64
	LabID        int64
	Interval     TimeInterval
	Status       ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking reports whether the reservation counts toward conflict and
// daily quota checks.
func (r *Reservation) IsBlocking() bool {
	return IsBlockingStatus(r.Status)
}

// HasStudent reports whether the reservation belongs to a student.
// Manager-created direct reservations have no student and are exempt from
// the daily quota rules.
func (r *Reservation) HasStudent() bool {
	return r.StudentEmail != nil && *r.StudentEmail != ""
}

// ReservationFilter фильтр для выборки резервирований
type ReservationFilter struct {
	LabID        *int64             // Фильтр по лаборатории (опционально)
	ComputerID   *int64             // Фильтр по компьютеру (опционально)
	StudentEmail *string            // Фильтр по студенту (опционально)
	Date         *time.Time         // Фильтр по дате (опционально)
	Status       *ReservationStatus // Фильтр по статусу (опционально)
	BlockingOnly bool               // Только блокирующие статусы (pending, approved)
}
