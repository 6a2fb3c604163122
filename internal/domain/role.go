package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole возвращается при неизвестной роли
var ErrUnknownRole = errors.New("unknown role")

// Role is the explicit requester role attached at the API boundary.
// The core never infers a role from data relations.
type Role string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// CanDirectBook reports whether the role creates reservations that skip the
// approval step (created directly as approved).
func (r Role) CanDirectBook() bool {
	return r == RoleManager || r == RoleAdmin
}
