package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
	apptRepo "github.com/agendli/scheduling-service/internal/infra/storage/appointment"
	"github.com/agendli/scheduling-service/internal/service/appointments/models"
	"github.com/agendli/scheduling-service/pkg/ptr"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

// Service сервис жизненного цикла записей: подтверждение, завершение,
// отмена и чтение деталей
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetDetails получает запись вместе с данными клиента, специалиста и услуги
func (s *Service) GetDetails(ctx context.Context, id uuid.UUID) (*models.AppointmentDetailsResponse, error) {
	s.logger.Info("GetDetails: fetching appointment id=%s", id)

	details, err := s.appointmentRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetDetails: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetDetails: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetDetails - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(details), nil
}

// Confirm переводит запись pending -> confirmed.
// Подтверждение занимает ресурс, поэтому пересечения перепроверяются в
// сериализуемой транзакции: с момента создания pending записи слот могли
// занять.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%s", id)

	apt, err := s.getAppointment(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !apt.Status.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: appointment id=%s has status %s", id, apt.Status)
		return nil, fmt.Errorf("%w: cannot confirm from %s", ErrInvalidTransition, apt.Status)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := s.appointmentRepo.ListConfirmedOverlapping(
			txCtx, apt.ProfessionalID, apt.StartTime, apt.EndTime, ptr.Ptr(apt.ID))
		if err != nil {
			s.logger.Error("Confirm: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: Confirm - failed to check overlaps: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			s.logger.Warn("Confirm: slot already taken for appointment id=%s", id)
			return ErrSlotConflict
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			if errors.Is(err, apptRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			s.logger.Error("Confirm: failed to update status: %v", err)
			return fmt.Errorf("%w: Confirm - failed to update status: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции - проигранная гонка
		// за слот, pending запись остаётся без изменений
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("Confirm: serialization retries exhausted: %v", err)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	s.logger.Info("Confirm: appointment id=%s confirmed", id)
	return s.reRead(ctx, "Confirm", id)
}

// Complete переводит запись confirmed -> completed
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%s", id)

	apt, err := s.getAppointment(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if !apt.Status.CanTransitionTo(domain.StatusCompleted) {
		s.logger.Warn("Complete: appointment id=%s has status %s", id, apt.Status)
		return nil, fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, apt.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		s.logger.Error("Complete: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: Complete - failed to update status: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: appointment id=%s completed", id)
	return s.reRead(ctx, "Complete", id)
}

// Cancel переводит запись pending|confirmed -> canceled.
// Отмена уже отменённой записи - идемпотентный no-op, а не ошибка.
// Из completed отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	apt, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if apt.Status == domain.StatusCanceled {
		s.logger.Info("Cancel: appointment id=%s already canceled", id)
		return models.FromDomainAppointment(apt), nil
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s has status %s", id, apt.Status)
		return nil, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, apt.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCanceled); err != nil {
		s.logger.Error("Cancel: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: Cancel - failed to update status: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%s canceled", id)
	return s.reRead(ctx, "Cancel", id)
}

// getAppointment получает запись и маппит ошибку репозитория
func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return apt, nil
}

// reRead перечитывает запись после изменения статуса
func (s *Service) reRead(ctx context.Context, op string, id uuid.UUID) (*models.AppointmentResponse, error) {
	apt, err := s.getAppointment(ctx, op, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(apt), nil
}
