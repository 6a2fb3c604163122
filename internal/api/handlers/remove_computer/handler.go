package remove_computer

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
	msgInvalidComputerID = "некорректный ID компьютера"
	msgMissingIdentity   = "отсутствует личность запрашивающего"
	msgComputerNotFound  = "компьютер не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/labs/{labId}/computers/{computerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	computerID, err := strconv.ParseInt(vars["computerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /labs/{id}/computers/{id} - Invalid computer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidComputerID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /labs/{id}/computers/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	requester := models.Requester{Email: identity.Email, Role: identity.Role}

	if err := h.service.RemoveComputer(r.Context(), computerID, requester); err != nil {
		switch {
		case errors.Is(err, labs.ErrComputerNotFound), errors.Is(err, labs.ErrLabNotFound):
			h.logger.Warn("DELETE /labs/{id}/computers/{id} - Not found: computer_id=%d", computerID)
			handlers.RespondNotFound(w, msgComputerNotFound)

		case errors.Is(err, labs.ErrAccessDenied):
			h.logger.Warn("DELETE /labs/{id}/computers/{id} - Access denied: computer_id=%d, requester=%s",
				computerID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /labs/{id}/computers/{id} - Failed: computer_id=%d, error=%v",
				computerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /labs/{id}/computers/{id} - Computer removed: computer_id=%d, requester=%s",
		computerID, identity.Email)
	w.WriteHeader(http.StatusNoContent)
}
