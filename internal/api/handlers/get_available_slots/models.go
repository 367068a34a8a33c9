package get_available_slots

import (
	"time"

	"github.com/agendli/scheduling-service/internal/domain"
	getAvailableSlots "github.com/agendli/scheduling-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	Start string `json:"start"` // ISO 8601
	End   string `json:"end"`   // ISO 8601
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"` // "2025-06-16"
	ProfessionalID  string         `json:"professionalId"`
	SpecialtyID     string         `json:"specialtyId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ProfessionalID:  resp.ProfessionalID.String(),
		SpecialtyID:     resp.SpecialtyID.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
