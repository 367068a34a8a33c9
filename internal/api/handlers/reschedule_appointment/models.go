package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	rescheduleAppointment "github.com/agendli/scheduling-service/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model.
// endTime принимается для совместимости с клиентом, но конец интервала
// всегда пересчитывается из длительности услуги.
type RescheduleAppointmentRequest struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // ISO 8601
	EndTime   string `json:"endTime"`   // ISO 8601, optional
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             string  `json:"id"`
	CalendarID     string  `json:"calendarId"`
	ClientID       string  `json:"clientId"`
	ProfessionalID string  `json:"professionalId"`
	SpecialtyID    string  `json:"specialtyId"`
	OwnerID        *string `json:"ownerId,omitempty"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest() (*rescheduleAppointment.Request, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	if r.EndTime != "" {
		if _, err := time.Parse(time.RFC3339, r.EndTime); err != nil {
			return nil, err
		}
	}

	return &rescheduleAppointment.Request{
		ID:        id,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:             resp.ID.String(),
		CalendarID:     resp.CalendarID.String(),
		ClientID:       resp.ClientID.String(),
		ProfessionalID: resp.ProfessionalID.String(),
		SpecialtyID:    resp.SpecialtyID.String(),
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		Status:         resp.Status,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.OwnerID != nil {
		ownerStr := resp.OwnerID.String()
		out.OwnerID = &ownerStr
	}

	return out
}
