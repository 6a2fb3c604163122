package add_computer

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
	msgMissingIdentity    = "отсутствует личность запрашивающего"
	msgLabNotFound        = "лаборатория не найдена"
	msgForbidden          = "доступ запрещен"
)

// AddComputerRequest HTTP request model
type AddComputerRequest struct {
	Name string `json:"name" validate:"required"`
}

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

// Handle POST /api/v1/labs/{labId}/computers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	labID, err := strconv.ParseInt(vars["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /labs/{id}/computers - Invalid lab ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /labs/{id}/computers - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req AddComputerRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /labs/{id}/computers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.AddComputerRequest{
		Requester: models.Requester{Email: identity.Email, Role: identity.Role},
		LabID:     labID,
		Name:      req.Name,
	}

	result, err := h.service.AddComputer(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, labs.ErrLabNotFound):
			h.logger.Warn("POST /labs/{id}/computers - Lab not found: lab_id=%d", labID)
			handlers.RespondNotFound(w, msgLabNotFound)

		case errors.Is(err, labs.ErrAccessDenied):
			h.logger.Warn("POST /labs/{id}/computers - Access denied: lab_id=%d, requester=%s",
				labID, identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, labs.ErrInvalidInput):
			h.logger.Warn("POST /labs/{id}/computers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /labs/{id}/computers - Failed: lab_id=%d, error=%v", labID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /labs/{id}/computers - Computer added: computer_id=%d, lab_id=%d, requester=%s",
		result.ID, labID, identity.Email)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
