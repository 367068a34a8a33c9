package domain

import (
	"time"

	"github.com/google/uuid"
)

// Calendar is an owner-scoped container for specialties, professionals and
// appointments. Deletion cascades are enforced by the schema, not here.
type Calendar struct {
	ID       uuid.UUID
	OwnerID  *uuid.UUID
	Name     string
	Location *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Specialty is a bookable service type. Duration is in minutes and must be
// positive; it fixes the length of every slot and appointment booked for it.
type Specialty struct {
	ID              uuid.UUID
	CalendarID      uuid.UUID
	Name            string
	DurationMinutes int
	Price           *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Professional is a service provider. Belongs to exactly one calendar and
// performs exactly one specialty.
type Professional struct {
	ID          uuid.UUID
	CalendarID  uuid.UUID
	SpecialtyID uuid.UUID
	Name        string
	AvatarURL   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo returns true if the professional is attached to the calendar
func (p *Professional) BelongsTo(calendarID uuid.UUID) bool {
	return p.CalendarID == calendarID
}

// BelongsTo returns true if the specialty is attached to the calendar
func (s *Specialty) BelongsTo(calendarID uuid.UUID) bool {
	return s.CalendarID == calendarID
}

// Client is a customer booking appointments. Phone may be updated
// opportunistically at booking time.
type Client struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Email   string
	Phone   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
