package domain

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Laboratory represents a managed computer laboratory.
// The operating window is optional: both bounds set means reservations must
// fit inside [OperatingStart, OperatingEnd), both nil means unrestricted.
type Laboratory struct {
	ID             int64
	Name           string
	Capacity       int
	OperatingStart *types.TimeString
	OperatingEnd   *types.TimeString
	ManagerEmails  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOperatingWindow reports whether the lab restricts reservation hours.
func (l *Laboratory) HasOperatingWindow() bool {
	return l.OperatingStart != nil && l.OperatingEnd != nil
}

// IsManager reports whether email belongs to one of the lab's managers.
func (l *Laboratory) IsManager(email string) bool {
	for _, m := range l.ManagerEmails {
		if m == email {
			return true
		}
	}
	return false
}

// Computer belongs to exactly one laboratory
type Computer struct {
	ID    int64
	LabID int64
	Name  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Student is identified by a unique email
type Student struct {
	Email     string
	FirstName string
	LastName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
