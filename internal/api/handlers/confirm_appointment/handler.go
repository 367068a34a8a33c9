package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/api/handlers"
	"github.com/agendli/scheduling-service/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "invalid request body, expected appointment id"
	msgNotFound           = "appointment not found"
	msgInvalidTransition  = "only pending appointments can be confirmed"
	msgSlotConflict       = "slot is already taken by a confirmed appointment"
)

// ConfirmAppointmentRequest HTTP request model
type ConfirmAppointmentRequest struct {
	ID string `json:"id"`
}

type Handler struct {
	service AppointmentService
	metrics Metrics
	logger  Logger
}

func NewHandler(service AppointmentService, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.logger.Warn("PUT /confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /confirm - Appointment not found: appointment_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PUT /confirm - Invalid transition: appointment_id=%s, %v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrSlotConflict):
			h.logger.Warn("PUT /confirm - Slot conflict: appointment_id=%s", id)
			h.metrics.IncSlotConflicts()
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("PUT /confirm - Failed to confirm: appointment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncAppointmentsBooked(result.Status)
	h.logger.Info("PUT /confirm - Appointment confirmed: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
