package scheduling

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("scheduling.repository: calendar not found")

	// ErrSpecialtyNotFound возвращается, когда услуга не найдена
	ErrSpecialtyNotFound = errors.New("scheduling.repository: specialty not found")

	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("scheduling.repository: professional not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("scheduling.repository: client not found")

	// ErrWorkingHoursNotFound возвращается, когда у специалиста нет
	// шаблона рабочих часов на указанный день недели
	ErrWorkingHoursNotFound = errors.New("scheduling.repository: working hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduling.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduling.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("scheduling.repository: failed to scan row")
)
