package create_reservation

import (
	"fmt"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequesterEmail == "" {
		return fmt.Errorf("%w: requester email is required", ErrInvalidInput)
	}

	if _, err := domain.ParseRole(string(req.RequesterRole)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ComputerID <= 0 {
		return fmt.Errorf("%w: computerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Формат времени проверяем здесь, отношение start/end — уже конвейер
	// допуска, чтобы причина отказа была единообразной (InvalidInterval)
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
