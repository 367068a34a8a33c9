package complete_appointment

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
	msgInvalidTransition  = "only confirmed appointments can be completed"
)

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	ID string `json:"id"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CompleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.logger.Warn("PUT /complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Complete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /complete - Appointment not found: appointment_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PUT /complete - Invalid transition: appointment_id=%s, %v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PUT /complete - Failed to complete: appointment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /complete - Appointment completed: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
