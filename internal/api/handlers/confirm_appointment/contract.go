package confirm_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
}

// Metrics бизнес-метрики бронирования
type Metrics interface {
	IncAppointmentsBooked(status string)
	IncSlotConflicts()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
