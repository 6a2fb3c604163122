package get_lab_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidLabID    = "некорректный ID лаборатории"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус в фильтре"
	msgMissingIdentity = "отсутствует личность запрашивающего"
	msgLabNotFound     = "лаборатория не найдена"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/labs/{labId}/reservations?date=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	labID, err := strconv.ParseInt(vars["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /labs/{id}/reservations - Invalid lab ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /labs/{id}/reservations - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	req := &models.GetLabReservationsRequest{
		Requester: models.Requester{Email: identity.Email, Role: identity.Role},
		LabID:     labID,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /labs/{id}/reservations - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetLabReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrLabNotFound):
			h.logger.Warn("GET /labs/{id}/reservations - Lab not found: lab_id=%d", labID)
			handlers.RespondNotFound(w, msgLabNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /labs/{id}/reservations - Access denied: lab_id=%d, requester=%s",
				labID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /labs/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /labs/{id}/reservations - Failed: lab_id=%d, error=%v", labID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /labs/{id}/reservations - Retrieved %d reservations: lab_id=%d, requester=%s",
		result.Total, labID, identity.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
