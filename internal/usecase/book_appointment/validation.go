package book_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса. Проверки идут в
// фиксированном порядке, первая провалившаяся останавливает остальные.
func validateRequest(req *Request) error {
	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarId is required", ErrMissingField)
	}

	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientId is required", ErrMissingField)
	}

	if req.ProfessionalID == uuid.Nil {
		return fmt.Errorf("%w: professionalId is required", ErrMissingField)
	}

	if req.SpecialtyID == uuid.Nil {
		return fmt.Errorf("%w: specialtyId is required", ErrMissingField)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrMissingField)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrMissingField)
	}

	return nil
}

// resolveInitialStatus возвращает начальный статус записи.
// Пустой статус означает путь прямого бронирования - confirmed.
func resolveInitialStatus(status string) (domain.AppointmentStatus, error) {
	switch status {
	case "":
		return domain.StatusConfirmed, nil
	case string(domain.StatusPending):
		return domain.StatusPending, nil
	case string(domain.StatusConfirmed):
		return domain.StatusConfirmed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// validateInterval проверяет, что конец интервала строго позже начала
func validateInterval(req *Request) error {
	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidInterval
	}
	return nil
}
