package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
	apptRepo "github.com/agendli/scheduling-service/internal/infra/storage/appointment"
	schedRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
	"github.com/agendli/scheduling-service/pkg/ptr"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedulingRepo  SchedulingRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	schedulingRepo SchedulingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		schedulingRepo:  schedulingRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи.
// Новый конец всегда пересчитывается из длительности услуги, статус
// записи не меняется. Проверка пересечений и обновление выполняются в
// одной сериализуемой транзакции; при конфликте исходное время остаётся
// без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%s, newStart=%s",
		req.ID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	apt, err := uc.appointmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%s not found", req.ID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Из терминального статуса переносить нельзя
	if !apt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%s has status %s", req.ID, apt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidTransition, apt.Status)
	}

	// 4. Пересчитываем конец из длительности услуги
	specialty, err := uc.schedulingRepo.GetSpecialty(ctx, apt.SpecialtyID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrSpecialtyNotFound) {
			uc.logger.Warn("RescheduleAppointment: specialty id=%s not found", apt.SpecialtyID)
			return nil, ErrSpecialtyNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get specialty id=%s: %v", apt.SpecialtyID, err)
		return nil, fmt.Errorf("%w: failed to get specialty: %v", ErrInternal, err)
	}

	newStart := req.StartTime
	newEnd := newStart.Add(time.Duration(specialty.DurationMinutes) * time.Minute)

	// 5. Проверяем пересечения и двигаем запись атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.appointmentRepo.ListConfirmedOverlapping(
			txCtx, apt.ProfessionalID, newStart, newEnd, ptr.Ptr(apt.ID))
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("RescheduleAppointment: slot %s-%s already taken for professional id=%s",
				newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339), apt.ProfessionalID)
			return ErrSlotConflict
		}

		if err := uc.appointmentRepo.UpdateTime(txCtx, apt.ID, newStart, newEnd); err != nil {
			if errors.Is(err, apptRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleAppointment: failed to update time: %v", err)
			return fmt.Errorf("%w: failed to update time: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции - проигранная гонка
		// за слот, исходное время остаётся без изменений
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RescheduleAppointment: serialization retries exhausted: %v", err)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	// 6. Перечитываем запись с обновлёнными таймстемпами
	updated, err := uc.appointmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to re-read appointment id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleAppointment: moved appointment id=%s to %s-%s",
		updated.ID, updated.StartTime.Format(time.RFC3339), updated.EndTime.Format(time.RFC3339))

	return toResponse(updated), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// toResponse конвертирует доменную запись в response
func toResponse(apt *domain.Appointment) *Response {
	return &Response{
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
