package reschedule_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendli/scheduling-service/internal/domain"
	apptRepo "github.com/agendli/scheduling-service/internal/infra/storage/appointment"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

type fakeAppointmentRepo struct {
	appointment    *domain.Appointment
	getErr         error
	overlapping    []*domain.Appointment
	overlappingErr error
	updateErr      error

	excludeID *uuid.UUID
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	apt := *f.appointment
	return &apt, nil
}

func (f *fakeAppointmentRepo) ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	f.excludeID = excludeID
	return f.overlapping, f.overlappingErr
}

func (f *fakeAppointmentRepo) UpdateTime(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.appointment.StartTime = start
	f.appointment.EndTime = end
	return nil
}

type fakeSchedulingRepo struct {
	specialty    *domain.Specialty
	specialtyErr error
}

func (f *fakeSchedulingRepo) GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	return f.specialty, f.specialtyErr
}

type fakeTxManager struct {
	err error
}

func (f fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestFixture(status domain.AppointmentStatus) (*fakeAppointmentRepo, *fakeSchedulingRepo, *Request) {
	specialtyID := uuid.New()
	start := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	apt := &domain.Appointment{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ProfessionalID: uuid.New(),
		SpecialtyID:    specialtyID,
		CalendarID:     uuid.New(),
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         status,
	}

	appts := &fakeAppointmentRepo{appointment: apt}
	sched := &fakeSchedulingRepo{
		specialty: &domain.Specialty{
			ID:              specialtyID,
			Name:            "Consultation",
			DurationMinutes: 60,
		},
	}

	req := &Request{
		ID:        apt.ID,
		StartTime: start.Add(4 * time.Hour),
	}

	return appts, sched, req
}

func TestExecute_MovesAppointment(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req.StartTime, resp.StartTime)
	assert.Equal(t, req.StartTime.Add(time.Hour), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Сама запись не должна считаться пересечением
	require.NotNil(t, appts.excludeID)
	assert.Equal(t, req.ID, *appts.excludeID)
}

func TestExecute_ConflictLeavesOriginalUnchanged(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)
	originalStart := appts.appointment.StartTime
	originalEnd := appts.appointment.EndTime

	appts.overlapping = []*domain.Appointment{
		{
			ID:        uuid.New(),
			StartTime: req.StartTime,
			EndTime:   req.StartTime.Add(time.Hour),
			Status:    domain.StatusConfirmed,
		},
	}

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, originalStart, appts.appointment.StartTime)
	assert.Equal(t, originalEnd, appts.appointment.EndTime)
}

func TestExecute_ConstraintViolationMapsToConflict(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)
	appts.updateErr = apptRepo.ErrSlotConflict

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)
	originalStart := appts.appointment.StartTime

	tx := fakeTxManager{err: fmt.Errorf("%w: txmanager: commit: pq: could not serialize access", txmanager.ErrSerialization)}
	uc := NewUseCase(appts, sched, tx, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, originalStart, appts.appointment.StartTime)
}

func TestExecute_PendingCanBeRescheduled(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusPending)

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCanceled} {
		t.Run(string(status), func(t *testing.T) {
			appts, sched, req := newTestFixture(status)

			uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)
	appts.getErr = apptRepo.ErrAppointmentNotFound

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_MissingStartTime(t *testing.T) {
	appts, sched, req := newTestFixture(domain.StatusConfirmed)
	req.StartTime = time.Time{}

	uc := NewUseCase(appts, sched, fakeTxManager{}, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
