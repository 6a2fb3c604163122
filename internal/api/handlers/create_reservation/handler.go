package create_reservation

import (
	"errors"
	"net/http"

	"github.com/ekarahan/LCR-ReservationService/internal/admission"
	"github.com/ekarahan/LCR-ReservationService/internal/api/handlers"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	createReservation "github.com/ekarahan/LCR-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingIdentity      = "отсутствует личность запрашивающего"
	msgInvalidInterval      = "некорректный интервал: конец должен быть позже начала"
	msgSlotUnavailable      = "выбранный временной слот занят"
	msgDailyLimitExceeded   = "превышен дневной лимит времени резервирования"
	msgMultipleLabs         = "в один день можно резервировать только в одной лаборатории"
	msgOutsideOperatingView = "интервал выходит за рабочие часы лаборатории"
	msgAccountNotFound      = "аккаунт запрашивающего не найден"
	msgRoleMismatch         = "заявленная роль не подтверждена справочником аккаунтов"
	msgComputerNotFound     = "компьютер не найден"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, admission.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: requester=%s", identity.Email)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, admission.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: requester=%s, computer_id=%d",
				identity.Email, req.ComputerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, admission.ErrDailyLimitExceeded):
			h.logger.Warn("POST /reservations - Daily limit exceeded: requester=%s", identity.Email)
			handlers.RespondError(w, http.StatusConflict, msgDailyLimitExceeded)

		case errors.Is(err, admission.ErrMultipleLabsPerDay):
			h.logger.Warn("POST /reservations - Multiple labs per day: requester=%s", identity.Email)
			handlers.RespondError(w, http.StatusConflict, msgMultipleLabs)

		case errors.Is(err, admission.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: requester=%s, computer_id=%d",
				identity.Email, req.ComputerID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideOperatingView)

		case errors.Is(err, createReservation.ErrAccountNotFound):
			h.logger.Warn("POST /reservations - Account not found: requester=%s", identity.Email)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, createReservation.ErrRoleMismatch):
			h.logger.Warn("POST /reservations - Role mismatch: requester=%s, claimed=%s",
				identity.Email, identity.Role)
			handlers.RespondForbidden(w, msgRoleMismatch)

		case errors.Is(err, createReservation.ErrComputerNotFound):
			h.logger.Warn("POST /reservations - Computer not found: computer_id=%d", req.ComputerID)
			handlers.RespondNotFound(w, msgComputerNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: requester=%s, error=%v", identity.Email, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: requester=%s, error=%v",
				identity.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, requester=%s, status=%s",
		result.ID, identity.Email, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
