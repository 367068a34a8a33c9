package get_available_slots

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrSpecialtyNotFound возвращается, когда услуга не найдена
	ErrSpecialtyNotFound = errors.New("specialty not found")

	// ErrSpecialtyMismatch возвращается, когда услуга и специалист
	// принадлежат разным календарям
	ErrSpecialtyMismatch = errors.New("specialty does not belong to the professional's calendar")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
