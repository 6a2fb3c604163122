package create_reservation

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	createReservation "github.com/ekarahan/LCR-ReservationService/internal/usecase/create_reservation"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ComputerID int64  `json:"computerId" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required"`      // "2026-09-01"
	StartTime  string `json:"startTime" validate:"required"` // "10:00"
	EndTime    string `json:"endTime" validate:"required"`   // "11:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	StudentEmail    *string `json:"studentEmail,omitempty"`
	ComputerID      int64   `json:"computerId"`
	LabID           int64   `json:"labId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(identity middleware.Identity) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RequesterEmail: identity.Email,
		RequesterRole:  identity.Role,
		ComputerID:     r.ComputerID,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		StudentEmail:    resp.StudentEmail,
		ComputerID:      resp.ComputerID,
		LabID:           resp.LabID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
