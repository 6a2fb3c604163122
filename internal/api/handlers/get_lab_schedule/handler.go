package get_lab_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	getLabSchedule "github.com/ekarahan/LCR-ReservationService/internal/usecase/get_lab_schedule"
)

const (
	msgInvalidLabID = "некорректный ID лаборатории"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgLabNotFound  = "лаборатория не найдена"
)

type Handler struct {
	useCase GetLabScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetLabScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/labs/{labId}/schedule?date=2026-09-01
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	labID, err := strconv.ParseInt(vars["labId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /labs/{id}/schedule - Invalid lab ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLabID)
		return
	}

	req := &getLabSchedule.Request{LabID: labID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /labs/{id}/schedule - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getLabSchedule.ErrLabNotFound):
			h.logger.Warn("GET /labs/{id}/schedule - Lab not found: lab_id=%d", labID)
			handlers.RespondNotFound(w, msgLabNotFound)

		case errors.Is(err, getLabSchedule.ErrInvalidInput):
			h.logger.Warn("GET /labs/{id}/schedule - Invalid input: lab_id=%d, error=%v", labID, err)
			handlers.RespondBadRequest(w, msgInvalidLabID)

		default:
			h.logger.Error("GET /labs/{id}/schedule - Failed: lab_id=%d, error=%v", labID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /labs/{id}/schedule - Schedule retrieved: lab_id=%d, date=%s, computers=%d",
		labID, result.Date.Format(domain.DateFormat), len(result.Computers))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
