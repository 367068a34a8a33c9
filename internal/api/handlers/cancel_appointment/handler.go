package cancel_appointment

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
	msgInvalidTransition  = "completed appointment cannot be canceled"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
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

// Handle PUT /api/v1/appointments/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.logger.Warn("PUT /cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /cancel - Appointment not found: appointment_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PUT /cancel - Invalid transition: appointment_id=%s, %v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PUT /cancel - Failed to cancel: appointment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cancel - Appointment canceled: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
