package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// IsValid returns true if the status is one of the known lifecycle states
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal returns true if no transition out of this status is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// HoldsResource returns true if appointments in this status occupy the
// professional's time and participate in conflict checks
func (s AppointmentStatus) HoldsResource() bool {
	return s == StatusConfirmed
}

// CanTransitionTo returns true if the lifecycle permits moving from s to next.
// Cancelling an already-canceled appointment is handled as an idempotent
// no-op by the caller, not as a transition.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCanceled
	}
	return false
}

// Appointment represents a booking of a professional's time by a client
type Appointment struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	SpecialtyID    uuid.UUID
	CalendarID     uuid.UUID

	// Denormalized calendar owner, resolved at booking time.
	// May be nil when owner resolution failed and the null-owner
	// policy permits booking anyway.
	OwnerID *uuid.UUID

	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetails is an appointment joined with the client, professional
// and specialty it references. Read model for the details endpoint.
type AppointmentDetails struct {
	Appointment

	ClientName  string
	ClientEmail string
	ClientPhone *string

	ProfessionalName string

	SpecialtyName            string
	SpecialtyDurationMinutes int
	SpecialtyPrice           *float64
}

// Slot returns the half-open interval held by the appointment
func (a *Appointment) Slot() Slot {
	return Slot{Start: a.StartTime, End: a.EndTime}
}

// IsActive returns true if the appointment is not in a terminal state
func (a *Appointment) IsActive() bool {
	return !a.Status.IsTerminal()
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment's start/end may change
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}
