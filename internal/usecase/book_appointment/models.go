package book_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	CalendarID     uuid.UUID // ID календаря
	ClientID       uuid.UUID // ID клиента
	ProfessionalID uuid.UUID // ID специалиста
	SpecialtyID    uuid.UUID // ID услуги

	StartTime time.Time // Начало записи
	EndTime   time.Time // Конец записи (проверяется, но пересчитывается из длительности услуги)

	// Начальный статус: "pending" или "confirmed". Пустая строка означает
	// confirmed (путь прямого бронирования).
	Status string

	Notes       *string // Дополнительные заметки (опционально)
	ClientPhone *string // Телефон клиента для оппортунистического обновления (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             uuid.UUID  // ID созданной записи
	CalendarID     uuid.UUID  // ID календаря
	ClientID       uuid.UUID  // ID клиента
	ProfessionalID uuid.UUID  // ID специалиста
	SpecialtyID    uuid.UUID  // ID услуги
	OwnerID        *uuid.UUID // Владелец календаря (может отсутствовать)

	StartTime time.Time // Начало записи
	EndTime   time.Time // Конец записи (start + длительность услуги)
	Status    string    // Статус записи
	Notes     *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
