package book_appointment

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
	schedRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
	"github.com/agendli/scheduling-service/pkg/ptr"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

type fakeSchedulingRepo struct {
	calendar        *domain.Calendar
	calendarErr     error
	professional    *domain.Professional
	professionalErr error
	specialty       *domain.Specialty
	specialtyErr    error
	client          *domain.Client
	clientErr       error

	updatedPhone    *string
	updatePhoneErr  error
}

func (f *fakeSchedulingRepo) GetCalendar(ctx context.Context, id uuid.UUID) (*domain.Calendar, error) {
	return f.calendar, f.calendarErr
}

func (f *fakeSchedulingRepo) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return f.professional, f.professionalErr
}

func (f *fakeSchedulingRepo) GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	return f.specialty, f.specialtyErr
}

func (f *fakeSchedulingRepo) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return f.client, f.clientErr
}

func (f *fakeSchedulingRepo) UpdateClientPhone(ctx context.Context, clientID uuid.UUID, phone string) error {
	f.updatedPhone = &phone
	return f.updatePhoneErr
}

type fakeAppointmentRepo struct {
	overlapping    []*domain.Appointment
	overlappingErr error
	created        *domain.Appointment
	createErr      error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	f.created = apt
	return apt, nil
}

func (f *fakeAppointmentRepo) ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	return f.overlapping, f.overlappingErr
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestFixture() (*fakeSchedulingRepo, *fakeAppointmentRepo, *fakeTxManager, *Request) {
	calendarID := uuid.New()
	ownerID := uuid.New()
	professionalID := uuid.New()
	specialtyID := uuid.New()
	clientID := uuid.New()

	sched := &fakeSchedulingRepo{
		calendar: &domain.Calendar{
			ID:      calendarID,
			OwnerID: &ownerID,
			Name:    "Downtown clinic",
		},
		professional: &domain.Professional{
			ID:          professionalID,
			CalendarID:  calendarID,
			SpecialtyID: specialtyID,
			Name:        "Dr. Adams",
		},
		specialty: &domain.Specialty{
			ID:              specialtyID,
			CalendarID:      calendarID,
			Name:            "Consultation",
			DurationMinutes: 60,
		},
		client: &domain.Client{
			ID:      clientID,
			OwnerID: ownerID,
			Name:    "Jordan Lee",
			Email:   "jordan@example.com",
		},
	}

	start := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	req := &Request{
		CalendarID:     calendarID,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		SpecialtyID:    specialtyID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
	}

	return sched, &fakeAppointmentRepo{}, &fakeTxManager{}, req
}

func TestExecute_ConfirmedBooking(t *testing.T) {
	sched, appts, tx, req := newTestFixture()

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, req.StartTime.Add(time.Hour), resp.EndTime)
	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, *sched.calendar.OwnerID, *resp.OwnerID)
}

func TestExecute_EndRecomputedFromDuration(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	// Клиент прислал неверный конец, длительность услуги важнее
	req.EndTime = req.StartTime.Add(3 * time.Hour)

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req.StartTime.Add(time.Hour), resp.EndTime)
}

func TestExecute_StartEqualsEnd(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.EndTime = req.StartTime

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_SlotConflictFromPreCheck(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	appts.overlapping = []*domain.Appointment{
		{
			ID:        uuid.New(),
			StartTime: req.StartTime,
			EndTime:   req.StartTime.Add(time.Hour),
			Status:    domain.StatusConfirmed,
		},
	}

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, appts.created)
}

func TestExecute_SlotConflictFromConstraint(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	appts.createErr = apptRepo.ErrSlotConflict

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	tx.err = fmt.Errorf("%w: txmanager: commit: pq: could not serialize access", txmanager.ErrSerialization)

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, appts.created)
}

func TestExecute_PendingSkipsOverlapCheck(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.Status = string(domain.StatusPending)
	appts.overlapping = []*domain.Appointment{
		{
			ID:        uuid.New(),
			StartTime: req.StartTime,
			EndTime:   req.StartTime.Add(time.Hour),
			Status:    domain.StatusConfirmed,
		},
	}

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 0, tx.calls)
}

func TestExecute_MissingClient(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.ClientID = uuid.Nil

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrMissingField)
}

func TestExecute_CalendarNotFound(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	sched.calendar = nil
	sched.calendarErr = schedRepo.ErrCalendarNotFound

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCalendarNotFound)
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestExecute_ProfessionalFromAnotherCalendar(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	sched.professional.CalendarID = uuid.New()

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrProfessionalMismatch)
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestExecute_InvalidStatus(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.Status = "draft"

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_NullOwnerPolicy(t *testing.T) {
	t.Run("forbidden", func(t *testing.T) {
		sched, appts, tx, req := newTestFixture()
		sched.calendar.OwnerID = nil

		uc := NewUseCase(appts, sched, tx, false, nopLogger{})
		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrOwnerResolution)
	})

	t.Run("allowed", func(t *testing.T) {
		sched, appts, tx, req := newTestFixture()
		sched.calendar.OwnerID = nil

		uc := NewUseCase(appts, sched, tx, true, nopLogger{})
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Nil(t, resp.OwnerID)
	})
}

func TestExecute_ClientPhoneUpdated(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.ClientPhone = ptr.Ptr("+55 11 91234-5678")

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, sched.updatedPhone)
	assert.Equal(t, "+55 11 91234-5678", *sched.updatedPhone)
}

func TestExecute_PhoneUpdateFailureDoesNotBlock(t *testing.T) {
	sched, appts, tx, req := newTestFixture()
	req.ClientPhone = ptr.Ptr("+55 11 91234-5678")
	sched.updatePhoneErr = schedRepo.ErrClientNotFound

	uc := NewUseCase(appts, sched, tx, true, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.NotNil(t, resp)
}
