package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendli/scheduling-service/internal/domain"
	schedRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
)

// UseCase use case для получения свободных слотов специалиста на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedulingRepo  SchedulingRepository
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	schedulingRepo SchedulingRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		schedulingRepo:  schedulingRepo,
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%s, specialty=%s, date=%s",
		req.ProfessionalID, req.SpecialtyID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем специалиста
	professional, err := uc.schedulingRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Получаем услугу (она задаёт длительность слота)
	specialty, err := uc.schedulingRepo.GetSpecialty(ctx, req.SpecialtyID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrSpecialtyNotFound) {
			uc.logger.Warn("GetAvailableSlots: specialty id=%s not found", req.SpecialtyID)
			return nil, ErrSpecialtyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get specialty id=%s: %v", req.SpecialtyID, err)
		return nil, fmt.Errorf("%w: failed to get specialty: %v", ErrInternal, err)
	}

	// 4. Услуга и специалист должны принадлежать одному календарю
	if !specialty.BelongsTo(professional.CalendarID) {
		uc.logger.Warn("GetAvailableSlots: specialty id=%s does not belong to calendar id=%s",
			req.SpecialtyID, professional.CalendarID)
		return nil, ErrSpecialtyMismatch
	}

	// 5. Получаем шаблон рабочих часов на день недели запрошенной даты.
	// Отсутствие шаблона означает нерабочий день, а не ошибку.
	workingHours, err := uc.schedulingRepo.GetWorkingHours(ctx, req.ProfessionalID, domain.WeekdayOf(req.Date))
	if err != nil && !errors.Is(err, schedRepo.ErrWorkingHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	window, ok := workingHours.WindowOn(req.Date, uc.location)
	if !ok {
		uc.logger.Info("GetAvailableSlots: professional id=%s does not work on %s",
			req.ProfessionalID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, specialty.DurationMinutes), nil
	}

	// 6. Генерируем слоты-кандидаты по всему рабочему окну
	candidates, err := domain.GenerateSlots(window, specialty.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 7. Получаем подтверждённые записи специалиста на этот день
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := uc.appointmentRepo.ListConfirmedByDay(ctx, req.ProfessionalID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 8. Отбрасываем слоты, пересекающиеся с подтверждёнными записями
	available := make([]domain.Slot, 0, len(candidates))
	for _, candidate := range candidates {
		if domain.HasConflict(candidate, appointments) {
			continue
		}
		available = append(available, candidate)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for professional=%s, date=%s",
		len(available), len(candidates), req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ProfessionalID:  req.ProfessionalID,
		SpecialtyID:     req.SpecialtyID,
		DurationMinutes: specialty.DurationMinutes,
		Slots:           available,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		ProfessionalID:  req.ProfessionalID,
		SpecialtyID:     req.SpecialtyID,
		DurationMinutes: durationMinutes,
		Slots:           []domain.Slot{},
	}
}
