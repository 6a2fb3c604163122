package admission

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Requester is the explicit identity of the caller. The role is attached at
// the API boundary and never inferred here.
type Requester struct {
	Role         domain.Role
	StudentEmail *string // обязателен для роли student, nil для прямых бронирований менеджера
}

// Request is one candidate reservation to admit or reject.
type Request struct {
	Requester Requester
	Computer  domain.Computer
	Lab       domain.Laboratory
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Snapshot is a read-only view of the existing reservations relevant to the
// candidate: those on the target computer for the date, and those of the
// requesting student for the date. The engine never performs I/O itself;
// the caller reads the snapshot and later persists the result.
type Snapshot struct {
	ComputerReservations []*domain.Reservation
	StudentReservations  []*domain.Reservation
}
