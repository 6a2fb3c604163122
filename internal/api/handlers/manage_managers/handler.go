package manage_managers

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
	msgInvalidLabID       = "некорректный ID лаборатории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingEmail       = "отсутствует email менеджера"
	msgMissingIdentity    = "отсутствует личность запрашивающего"
	msgLabNotFound        = "лаборатория не найдена"
	msgForbidden          = "доступ запрещен"
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

// HandleAdd POST /api/v1/labs/{labId}/managers
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	labID, identity, ok := h.parseLabAndIdentity(w, r, "POST /labs/{id}/managers")
	if !ok {
		return
	}

	var req AddManagerRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /labs/{id}/managers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	requester := models.Requester{Email: identity.Email, Role: identity.Role}

	if err := h.service.AddManager(r.Context(), labID, req.Email, requester); err != nil {
		h.respondServiceError(w, "POST /labs/{id}/managers", labID, identity.Email, err)
		return
	}

	h.logger.Info("POST /labs/{id}/managers - Manager added: lab_id=%d, email=%s, requester=%s",
		labID, req.Email, identity.Email)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove DELETE /api/v1/labs/{labId}/managers/{email}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	labID, identity, ok := h.parseLabAndIdentity(w, r, "DELETE /labs/{id}/managers/{email}")
	if !ok {
		return
	}

	email := mux.Vars(r)["email"]
	if email == "" {
		h.logger.Warn("DELETE /labs/{id}/managers/{email} - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	requester := models.Requester{Email: identity.Email, Role: identity.Role}

	if err := h.service.RemoveManager(r.Context(), labID, email, requester); err != nil {
		h.respondServiceError(w, "DELETE /labs/{id}/managers/{email}", labID, identity.Email, err)
		return
	}

	h.logger.Info("DELETE /labs/{id}/managers/{email} - Manager removed: lab_id=%d, email=%s, requester=%s",
		labID, email, identity.Email)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseLabAndIdentity(w http.ResponseWriter, r *http.Request, op string) (int64, middleware.Identity, bool) {
	labID, err := strconv.ParseInt(mux.Vars(r)["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid lab ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return 0, middleware.Identity{}, false
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing identity", op)
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return 0, middleware.Identity{}, false
	}

	return labID, identity, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, labID int64, requester string, err error) {
	switch {
	case errors.Is(err, labs.ErrLabNotFound):
		h.logger.Warn("%s - Lab not found: lab_id=%d", op, labID)
		handlers.RespondNotFound(w, msgLabNotFound)

	case errors.Is(err, labs.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: lab_id=%d, requester=%s", op, labID, requester)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, labs.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: lab_id=%d, error=%v", op, labID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Failed: lab_id=%d, error=%v", op, labID, err)
		handlers.RespondInternalError(w)
	}
}
