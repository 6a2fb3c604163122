package list_labs

import (
	"net/http"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/labs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /labs - Failed to list labs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /labs - Retrieved %d labs", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
