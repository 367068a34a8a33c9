package book_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	// ListConfirmedOverlapping получает подтверждённые записи специалиста,
	// пересекающиеся с интервалом [start, end)
	ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error)
}

// SchedulingRepository интерфейс репозитория справочных сущностей расписания
type SchedulingRepository interface {
	GetCalendar(ctx context.Context, id uuid.UUID) (*domain.Calendar, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error)
	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	UpdateClientPhone(ctx context.Context, clientID uuid.UUID, phone string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
