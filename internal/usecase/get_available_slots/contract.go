package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	// ListConfirmedByDay получает подтверждённые записи специалиста на день
	ListConfirmedByDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*domain.Appointment, error)
}

// SchedulingRepository интерфейс репозитория справочных сущностей расписания
type SchedulingRepository interface {
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error)
	GetWorkingHours(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) (*domain.WorkingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
