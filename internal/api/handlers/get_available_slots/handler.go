package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/api/handlers"
	"github.com/agendli/scheduling-service/internal/domain"
	getAvailableSlots "github.com/agendli/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidProfessionalID = "invalid or missing professionalId"
	msgInvalidSpecialtyID    = "invalid or missing specialtyId"
	msgInvalidDate           = "invalid or missing date, expected YYYY-MM-DD"
	msgProfessionalNotFound  = "professional not found"
	msgSpecialtyNotFound     = "specialty not found"
	msgSpecialtyMismatch     = "specialty does not belong to the professional's calendar"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	professionalID, err := uuid.Parse(query.Get("professionalId"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	specialtyID, err := uuid.Parse(query.Get("specialtyId"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid specialty ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialtyID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ProfessionalID: professionalID,
		SpecialtyID:    specialtyID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /available-slots - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialtyNotFound):
			h.logger.Warn("GET /available-slots - Specialty not found: specialty_id=%s", specialtyID)
			handlers.RespondNotFound(w, msgSpecialtyNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialtyMismatch):
			h.logger.Warn("GET /available-slots - Specialty mismatch: professional_id=%s, specialty_id=%s",
				professionalID, specialtyID)
			handlers.RespondBadRequest(w, msgSpecialtyMismatch)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /available-slots - Failed to list slots: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Returned %d slots: professional_id=%s, date=%s",
		len(result.Slots), professionalID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
