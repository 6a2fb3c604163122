package get_student_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
)

const (
	msgMissingEmail    = "отсутствует email студента"
	msgMissingIdentity = "отсутствует личность запрашивающего"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус в фильтре"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{email}/reservations?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentEmail := vars["email"]
	if studentEmail == "" {
		h.logger.Warn("GET /students/{email}/reservations - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{email}/reservations - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	req := &models.GetStudentReservationsRequest{
		Requester:    models.Requester{Email: identity.Email, Role: identity.Role},
		StudentEmail: studentEmail,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetStudentReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /students/{email}/reservations - Access denied: student=%s, requester=%s",
				studentEmail, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /students/{email}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{email}/reservations - Failed: student=%s, error=%v",
				studentEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{email}/reservations - Retrieved %d reservations: student=%s, requester=%s",
		result.Total, studentEmail, identity.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
