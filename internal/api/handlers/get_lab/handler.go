package get_lab

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs"
)

const (
	msgInvalidLabID = "некорректный ID лаборатории"
	msgLabNotFound  = "лаборатория не найдена"
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

// Handle GET /api/v1/labs/{labId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	labID, err := strconv.ParseInt(vars["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /labs/{id} - Invalid lab ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return
	}

	result, err := h.service.Get(r.Context(), labID)
	if err != nil {
		switch {
		case errors.Is(err, labs.ErrLabNotFound):
			h.logger.Warn("GET /labs/{id} - Lab not found: lab_id=%d", labID)
			handlers.RespondNotFound(w, msgLabNotFound)

		default:
			h.logger.Error("GET /labs/{id} - Failed: lab_id=%d, error=%v", labID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /labs/{id} - Lab retrieved: lab_id=%d, computers=%d", labID, len(result.Computers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
