package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/agendli/scheduling-service/internal/api/handlers"
	rescheduleAppointment "github.com/agendli/scheduling-service/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body, expected id and startTime"
	msgNotFound           = "appointment not found"
	msgSpecialtyNotFound  = "specialty not found"
	msgInvalidTransition  = "appointment can no longer be rescheduled"
	msgSlotConflict       = "slot is already taken by a confirmed appointment"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("PUT /reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /reschedule - Appointment not found: appointment_id=%s", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSpecialtyNotFound):
			h.logger.Warn("PUT /reschedule - Specialty not found: appointment_id=%s", req.ID)
			handlers.RespondNotFound(w, msgSpecialtyNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTransition):
			h.logger.Warn("PUT /reschedule - Invalid transition: appointment_id=%s, %v", req.ID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("PUT /reschedule - Slot conflict: appointment_id=%s, start=%s", req.ID, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /reschedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /reschedule - Failed to reschedule: appointment_id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reschedule - Appointment moved: appointment_id=%s, start=%s, end=%s",
		result.ID, result.StartTime.Format(time.RFC3339), result.EndTime.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
