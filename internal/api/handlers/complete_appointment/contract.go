package complete_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
