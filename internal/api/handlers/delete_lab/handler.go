package delete_lab

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
)

const (
	msgInvalidLabID    = "некорректный ID лаборатории"
	msgMissingIdentity = "отсутствует личность запрашивающего"
	msgLabNotFound     = "лаборатория не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service LabService
	logger  Logger
}

func NewHandler(service LabService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/labs/{labId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	labID, err := strconv.ParseInt(vars["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /labs/{id} - Invalid lab ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /labs/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	requester := models.Requester{Email: identity.Email, Role: identity.Role}

	if err := h.service.Delete(r.Context(), labID, requester); err != nil {
		switch {
		case errors.Is(err, labs.ErrLabNotFound):
			h.logger.Warn("DELETE /labs/{id} - Lab not found: lab_id=%d", labID)
			handlers.RespondNotFound(w, msgLabNotFound)

		case errors.Is(err, labs.ErrAccessDenied):
			h.logger.Warn("DELETE /labs/{id} - Access denied: lab_id=%d, requester=%s", labID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /labs/{id} - Failed: lab_id=%d, error=%v", labID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /labs/{id} - Lab deleted: lab_id=%d, requester=%s", labID, identity.Email)
	w.WriteHeader(http.StatusNoContent)
}
