package create_lab

import (
	"errors"
	"net/http"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует личность запрашивающего"
	msgForbidden          = "доступ запрещен"
	msgDuplicateLab       = "лаборатория с таким именем уже существует"
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

// Handle POST /api/v1/labs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /labs - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateLabRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /labs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(identity))
	if err != nil {
		switch {
		case errors.Is(err, labs.ErrAccessDenied):
			h.logger.Warn("POST /labs - Access denied: requester=%s", identity.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, labs.ErrDuplicateLab):
			h.logger.Warn("POST /labs - Duplicate lab name=%s", req.Name)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateLab)

		case errors.Is(err, labs.ErrInvalidInput):
			h.logger.Warn("POST /labs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /labs - Failed to create lab: name=%s, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /labs - Lab created: lab_id=%d, requester=%s", result.ID, identity.Email)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
