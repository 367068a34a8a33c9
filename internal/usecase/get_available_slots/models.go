package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID uuid.UUID // ID специалиста
	SpecialtyID    uuid.UUID // ID услуги (задаёт длительность слота)
	Date           time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time     // Дата, на которую запрашивались слоты
	ProfessionalID  uuid.UUID     // ID специалиста
	SpecialtyID     uuid.UUID     // ID услуги
	DurationMinutes int           // Длительность каждого слота в минутах
	Slots           []domain.Slot // Свободные слоты в хронологическом порядке
}
