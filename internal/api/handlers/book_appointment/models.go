package book_appointment

import (
	"time"

	"github.com/google/uuid"

	bookAppointment "github.com/agendli/scheduling-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	CalendarID     string  `json:"calendarId"`
	ClientID       string  `json:"clientId"`
	ProfessionalID string  `json:"professionalId"`
	SpecialtyID    string  `json:"specialtyId"`
	StartTime      string  `json:"startTime"` // ISO 8601
	EndTime        string  `json:"endTime"`   // ISO 8601
	Status         string  `json:"status,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	ClientPhone    *string `json:"clientPhone,omitempty"`
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые UUID поля превращаются в uuid.Nil, их отлавливает валидация
// use case с точным сообщением о пропущенном поле.
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	calendarID, err := parseOptionalUUID(r.CalendarID)
	if err != nil {
		return nil, err
	}
	clientID, err := parseOptionalUUID(r.ClientID)
	if err != nil {
		return nil, err
	}
	professionalID, err := parseOptionalUUID(r.ProfessionalID)
	if err != nil {
		return nil, err
	}
	specialtyID, err := parseOptionalUUID(r.SpecialtyID)
	if err != nil {
		return nil, err
	}

	startTime, err := parseOptionalTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseOptionalTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		CalendarID:     calendarID,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		SpecialtyID:    specialtyID,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         r.Status,
		Notes:          r.Notes,
		ClientPhone:    r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
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

func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func parseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
