package book_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField возвращается, когда в запросе нет обязательного поля
	ErrMissingField = errors.New("book_appointment: missing required field")

	// ErrReferenceNotFound возвращается, когда ссылка на сущность не разрешается
	ErrReferenceNotFound = errors.New("book_appointment: referenced entity not found")

	// Конкретизации ErrReferenceNotFound по сущностям. Все они проходят
	// errors.Is(err, ErrReferenceNotFound).
	ErrCalendarNotFound     = fmt.Errorf("%w: calendar", ErrReferenceNotFound)
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", ErrReferenceNotFound)
	ErrSpecialtyNotFound    = fmt.Errorf("%w: specialty", ErrReferenceNotFound)
	ErrClientNotFound       = fmt.Errorf("%w: client", ErrReferenceNotFound)

	// ErrProfessionalMismatch возвращается, когда специалист принадлежит
	// другому календарю
	ErrProfessionalMismatch = fmt.Errorf("%w: professional does not belong to calendar", ErrReferenceNotFound)

	// ErrSpecialtyMismatch возвращается, когда услуга принадлежит другому
	// календарю
	ErrSpecialtyMismatch = fmt.Errorf("%w: specialty does not belong to calendar", ErrReferenceNotFound)

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("book_appointment: end time must be after start time")

	// ErrInvalidStatus возвращается при недопустимом начальном статусе
	ErrInvalidStatus = errors.New("book_appointment: initial status must be pending or confirmed")

	// ErrOwnerResolution возвращается, когда владелец календаря не
	// разрешается, а политика запрещает запись без владельца
	ErrOwnerResolution = errors.New("book_appointment: failed to resolve calendar owner")

	// ErrSlotConflict возвращается, когда слот уже занят подтверждённой
	// записью. Ожидаемый исход гонки, клиент может перезапросить слоты.
	ErrSlotConflict = errors.New("book_appointment: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
