package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrSpecialtyNotFound возвращается, когда услуга записи не найдена
	ErrSpecialtyNotFound = errors.New("reschedule_appointment: specialty not found")

	// ErrInvalidTransition возвращается при попытке перенести запись в
	// терминальном статусе
	ErrInvalidTransition = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrSlotConflict возвращается, когда новое время занято подтверждённой
	// записью. Исходная запись остаётся без изменений.
	ErrSlotConflict = errors.New("reschedule_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
