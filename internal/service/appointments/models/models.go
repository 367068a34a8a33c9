package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	CalendarID     uuid.UUID  `json:"calendarId"`
	ClientID       uuid.UUID  `json:"clientId"`
	ProfessionalID uuid.UUID  `json:"professionalId"`
	SpecialtyID    uuid.UUID  `json:"specialtyId"`
	OwnerID        *uuid.UUID `json:"ownerId,omitempty"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentDetailsResponse запись вместе с данными клиента, специалиста
// и услуги
type AppointmentDetailsResponse struct {
	AppointmentResponse

	Client       ClientInfo       `json:"client"`
	Professional ProfessionalInfo `json:"professional"`
	Specialty    SpecialtyInfo    `json:"specialty"`
}

// ClientInfo данные клиента в составе AppointmentDetailsResponse
type ClientInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone *string   `json:"phone,omitempty"`
}

// ProfessionalInfo данные специалиста в составе AppointmentDetailsResponse
type ProfessionalInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SpecialtyInfo данные услуги в составе AppointmentDetailsResponse
type SpecialtyInfo struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           *float64  `json:"price,omitempty"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	if apt == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:             apt.ID,
		CalendarID:     apt.CalendarID,
		ClientID:       apt.ClientID,
		ProfessionalID: apt.ProfessionalID,
		SpecialtyID:    apt.SpecialtyID,
		OwnerID:        apt.OwnerID,
		StartTime:      apt.StartTime,
		EndTime:        apt.EndTime,
		Status:         string(apt.Status),
		Notes:          apt.Notes,
		CreatedAt:      apt.CreatedAt,
		UpdatedAt:      apt.UpdatedAt,
	}
}

// FromDomainDetails конвертирует domain модель деталей записи в DTO
func FromDomainDetails(details *domain.AppointmentDetails) *AppointmentDetailsResponse {
	if details == nil {
		return nil
	}

	return &AppointmentDetailsResponse{
		AppointmentResponse: *FromDomainAppointment(&details.Appointment),
		Client: ClientInfo{
			ID:    details.ClientID,
			Name:  details.ClientName,
			Email: details.ClientEmail,
			Phone: details.ClientPhone,
		},
		Professional: ProfessionalInfo{
			ID:   details.ProfessionalID,
			Name: details.ProfessionalName,
		},
		Specialty: SpecialtyInfo{
			ID:              details.SpecialtyID,
			Name:            details.SpecialtyName,
			DurationMinutes: details.SpecialtyDurationMinutes,
			Price:           details.SpecialtyPrice,
		},
	}
}
