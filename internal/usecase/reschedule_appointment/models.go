package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на перенос записи
type Request struct {
	ID        uuid.UUID // ID переносимой записи
	StartTime time.Time // Новое начало записи
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID             uuid.UUID  // ID записи
	CalendarID     uuid.UUID  // ID календаря
	ClientID       uuid.UUID  // ID клиента
	ProfessionalID uuid.UUID  // ID специалиста
	SpecialtyID    uuid.UUID  // ID услуги
	OwnerID        *uuid.UUID // Владелец календаря

	StartTime time.Time // Новое начало
	EndTime   time.Time // Новый конец (start + длительность услуги)
	Status    string    // Статус (перенос его не меняет)
	Notes     *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
