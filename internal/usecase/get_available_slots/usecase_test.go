package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendli/scheduling-service/internal/domain"
	schedRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
	"github.com/agendli/scheduling-service/pkg/ptr"
)

type fakeSchedulingRepo struct {
	professional    *domain.Professional
	professionalErr error
	specialty       *domain.Specialty
	specialtyErr    error
	workingHours    *domain.WorkingHours
	workingHoursErr error
}

func (f *fakeSchedulingRepo) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return f.professional, f.professionalErr
}

func (f *fakeSchedulingRepo) GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	return f.specialty, f.specialtyErr
}

func (f *fakeSchedulingRepo) GetWorkingHours(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) (*domain.WorkingHours, error) {
	return f.workingHours, f.workingHoursErr
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) ListConfirmedByDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestFixture(durationMinutes int, start, end string) (*fakeSchedulingRepo, *fakeAppointmentRepo, *Request) {
	calendarID := uuid.New()
	professionalID := uuid.New()
	specialtyID := uuid.New()

	// Понедельник
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	sched := &fakeSchedulingRepo{
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
			DurationMinutes: durationMinutes,
		},
		workingHours: &domain.WorkingHours{
			ProfessionalID: professionalID,
			DayOfWeek:      1,
			IsWorkingDay:   true,
			StartTime:      ptr.Ptr(start),
			EndTime:        ptr.Ptr(end),
		},
	}

	req := &Request{
		ProfessionalID: professionalID,
		SpecialtyID:    specialtyID,
		Date:           date,
	}

	return sched, &fakeAppointmentRepo{appointments: []*domain.Appointment{}}, req
}

func TestExecute_FullWindowNoAppointments(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 60, resp.DurationMinutes)

	day := req.Date
	assert.Equal(t, day.Add(9*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].End)
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[1].Start)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[2].Start)
}

func TestExecute_ConfirmedAppointmentRemovesSlot(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")

	day := req.Date
	appts.appointments = []*domain.Appointment{
		{
			ID:             uuid.New(),
			ProfessionalID: req.ProfessionalID,
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(11 * time.Hour),
			Status:         domain.StatusConfirmed,
		},
	}

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, day.Add(9*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[1].Start)
}

func TestExecute_PendingAppointmentDoesNotBlock(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")

	day := req.Date
	appts.appointments = []*domain.Appointment{
		{
			ID:             uuid.New(),
			ProfessionalID: req.ProfessionalID,
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(11 * time.Hour),
			Status:         domain.StatusPending,
		},
	}

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_FinalSlotMayOverrunWindow(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "10:30:00")

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	day := req.Date
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[1].Start)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[1].End)
}

func TestExecute_NonWorkingDayReturnsEmpty(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	sched.workingHours.IsWorkingDay = false

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MissingWorkingHoursReturnsEmpty(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	sched.workingHours = nil
	sched.workingHoursErr = schedRepo.ErrWorkingHoursNotFound

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecialtyNotFound(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	sched.specialty = nil
	sched.specialtyErr = schedRepo.ErrSpecialtyNotFound

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSpecialtyNotFound)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	sched.professional = nil
	sched.professionalErr = schedRepo.ErrProfessionalNotFound

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_SpecialtyFromAnotherCalendar(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	sched.specialty.CalendarID = uuid.New()

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSpecialtyMismatch)
}

func TestExecute_InvalidInput(t *testing.T) {
	sched, appts, req := newTestFixture(60, "09:00:00", "12:00:00")
	req.ProfessionalID = uuid.Nil

	uc := NewUseCase(appts, sched, time.UTC, nopLogger{})
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
