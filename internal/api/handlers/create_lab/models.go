package create_lab

import (
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

// CreateLabRequest HTTP request model
type CreateLabRequest struct {
	Name           string   `json:"name" validate:"required"`
	Capacity       int      `json:"capacity" validate:"required,gt=0"`
	OperatingStart *string  `json:"operatingStart,omitempty"` // "09:00"
	OperatingEnd   *string  `json:"operatingEnd,omitempty"`   // "17:00"
	ManagerEmails  []string `json:"managerEmails,omitempty" validate:"omitempty,dive,email"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLabRequest) ToServiceRequest(identity middleware.Identity) *models.CreateLabRequest {
	return &models.CreateLabRequest{
		Requester:      models.Requester{Email: identity.Email, Role: identity.Role},
		Name:           r.Name,
		Capacity:       r.Capacity,
		OperatingStart: r.OperatingStart,
		OperatingEnd:   r.OperatingEnd,
		ManagerEmails:  r.ManagerEmails,
	}
}
