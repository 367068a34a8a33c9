package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/api/handlers"
	"github.com/agendli/scheduling-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid or missing appointment id, expected UUID"
	msgNotFound             = "appointment not found"
)

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

// Handle GET /api/v1/appointments/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		h.logger.Warn("GET /details - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	details, err := h.service.GetDetails(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /details - Appointment not found: appointment_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /details - Failed to get appointment: appointment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /details - Appointment retrieved: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, details)
}
