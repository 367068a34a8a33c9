package book_appointment

import (
	"context"

	bookAppointment "github.com/agendli/scheduling-service/internal/usecase/book_appointment"
)

type BookAppointmentUseCase interface {
	Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
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
