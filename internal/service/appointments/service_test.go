package appointments

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
	appointment *domain.Appointment
	getErr      error
	details     *domain.AppointmentDetails
	detailsErr  error
	overlapping []*domain.Appointment
	updateErr   error

	statusUpdates []domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	apt := *f.appointment
	return &apt, nil
}

func (f *fakeAppointmentRepo) GetDetails(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeAppointmentRepo) ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	return f.overlapping, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	f.appointment.Status = status
	return nil
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

func newService(status domain.AppointmentStatus) (*Service, *fakeAppointmentRepo) {
	start := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:             uuid.New(),
			ClientID:       uuid.New(),
			ProfessionalID: uuid.New(),
			SpecialtyID:    uuid.New(),
			CalendarID:     uuid.New(),
			StartTime:      start,
			EndTime:        start.Add(time.Hour),
			Status:         status,
		},
	}
	return NewService(repo, fakeTxManager{}, nopLogger{}), repo
}

func TestConfirm_FromPending(t *testing.T) {
	svc, repo := newService(domain.StatusPending)

	resp, err := svc.Confirm(context.Background(), repo.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.statusUpdates)
}

func TestConfirm_SlotTakenSincePending(t *testing.T) {
	svc, repo := newService(domain.StatusPending)
	repo.overlapping = []*domain.Appointment{
		{
			ID:        uuid.New(),
			StartTime: repo.appointment.StartTime,
			EndTime:   repo.appointment.EndTime,
			Status:    domain.StatusConfirmed,
		},
	}

	_, err := svc.Confirm(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, domain.StatusPending, repo.appointment.Status)
}

func TestConfirm_ConstraintViolationMapsToConflict(t *testing.T) {
	svc, repo := newService(domain.StatusPending)
	repo.updateErr = apptRepo.ErrSlotConflict

	_, err := svc.Confirm(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestConfirm_SerializationRetriesExhausted(t *testing.T) {
	_, repo := newService(domain.StatusPending)
	tx := fakeTxManager{err: fmt.Errorf("%w: txmanager: commit: pq: could not serialize access", txmanager.ErrSerialization)}
	svc := NewService(repo, tx, nopLogger{})

	_, err := svc.Confirm(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, repo.statusUpdates)
}

func TestConfirm_InvalidFromOtherStates(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCanceled,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo := newService(status)

			_, err := svc.Confirm(context.Background(), repo.appointment.ID)

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestComplete_FromConfirmed(t *testing.T) {
	svc, repo := newService(domain.StatusConfirmed)

	resp, err := svc.Complete(context.Background(), repo.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestComplete_InvalidFromPending(t *testing.T) {
	svc, repo := newService(domain.StatusPending)

	_, err := svc.Complete(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusPending, domain.StatusConfirmed} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo := newService(status)

			resp, err := svc.Cancel(context.Background(), repo.appointment.ID)

			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCanceled), resp.Status)
		})
	}
}

func TestCancel_AlreadyCanceledIsNoOp(t *testing.T) {
	svc, repo := newService(domain.StatusCanceled)

	resp, err := svc.Cancel(context.Background(), repo.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
	assert.Empty(t, repo.statusUpdates)
}

func TestCancel_CompletedRejected(t *testing.T) {
	svc, repo := newService(domain.StatusCompleted)

	_, err := svc.Cancel(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCompleted, repo.appointment.Status)
}

func TestGetDetails_NotFound(t *testing.T) {
	svc, repo := newService(domain.StatusConfirmed)
	repo.detailsErr = apptRepo.ErrAppointmentNotFound

	_, err := svc.GetDetails(context.Background(), repo.appointment.ID)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetDetails_JoinedFields(t *testing.T) {
	svc, repo := newService(domain.StatusConfirmed)
	phone := "+55 11 91234-5678"
	repo.details = &domain.AppointmentDetails{
		Appointment:              *repo.appointment,
		ClientName:               "Jordan Lee",
		ClientEmail:              "jordan@example.com",
		ClientPhone:              &phone,
		ProfessionalName:         "Dr. Adams",
		SpecialtyName:            "Consultation",
		SpecialtyDurationMinutes: 60,
	}

	resp, err := svc.GetDetails(context.Background(), repo.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", resp.Client.Name)
	assert.Equal(t, "Dr. Adams", resp.Professional.Name)
	assert.Equal(t, 60, resp.Specialty.DurationMinutes)
}
