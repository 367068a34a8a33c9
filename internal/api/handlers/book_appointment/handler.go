package book_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/agendli/scheduling-service/internal/api/handlers"
	bookAppointment "github.com/agendli/scheduling-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidIDFormat    = "invalid id format, expected UUID"
	msgInvalidTimeFormat  = "invalid time format, expected ISO 8601"
	msgSlotConflict       = "slot is already taken by a confirmed appointment"
	msgOwnerResolution    = "could not resolve calendar owner"
)

type Handler struct {
	useCase BookAppointmentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse request: %v", err)
		if isTimeParseError(err) {
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		} else {
			handlers.RespondBadRequest(w, msgInvalidIDFormat)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /book - Slot conflict: professional_id=%s, start=%s",
				req.ProfessionalID, req.StartTime)
			h.metrics.IncSlotConflicts()
			handlers.RespondConflict(w, msgSlotConflict)

		// Календарь нужен для разрешения владельца, поэтому его отсутствие
		// трактуется как ошибка запроса, а не как 404
		case errors.Is(err, bookAppointment.ErrCalendarNotFound):
			h.logger.Warn("POST /book - Calendar not found: calendar_id=%s", req.CalendarID)
			handlers.RespondBadRequest(w, msgOwnerResolution)

		case errors.Is(err, bookAppointment.ErrReferenceNotFound):
			h.logger.Warn("POST /book - Reference not found: %v", err)
			handlers.RespondNotFound(w, err.Error())

		case errors.Is(err, bookAppointment.ErrMissingField),
			errors.Is(err, bookAppointment.ErrInvalidInterval),
			errors.Is(err, bookAppointment.ErrInvalidStatus):
			h.logger.Warn("POST /book - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookAppointment.ErrOwnerResolution):
			h.logger.Warn("POST /book - Owner resolution failed: calendar_id=%s", req.CalendarID)
			handlers.RespondBadRequest(w, msgOwnerResolution)

		default:
			h.logger.Error("POST /book - Failed to book appointment: professional_id=%s, error=%v",
				req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncAppointmentsBooked(result.Status)
	h.logger.Info("POST /book - Appointment booked: appointment_id=%s, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// isTimeParseError отличает ошибку парсинга времени от ошибки парсинга UUID
func isTimeParseError(err error) bool {
	var parseErr *time.ParseError
	return errors.As(err, &parseErr)
}
