package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendli/scheduling-service/internal/domain"
	apptRepo "github.com/agendli/scheduling-service/internal/infra/storage/appointment"
	schedRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedulingRepo  SchedulingRepository
	txManager       TransactionManager
	allowNullOwner  bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// allowNullOwner разрешает запись с неразрешённым владельцем календаря.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	schedulingRepo SchedulingRepository,
	txManager TransactionManager,
	allowNullOwner bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		schedulingRepo:  schedulingRepo,
		txManager:       txManager,
		allowNullOwner:  allowNullOwner,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Подтверждённые записи создаются в сериализуемой транзакции: проверка
// пересечений и вставка выполняются атомарно, а exclusion constraint в БД
// закрывает гонку между конкурентными бронированиями.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: calendar=%s, client=%s, professional=%s, specialty=%s, start=%s",
		req.CalendarID, req.ClientID, req.ProfessionalID, req.SpecialtyID,
		req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	status, err := resolveInitialStatus(req.Status)
	if err != nil {
		uc.logger.Warn("BookAppointment: %v", err)
		return nil, err
	}

	// 2. Разрешаем ссылки на сущности
	calendar, err := uc.schedulingRepo.GetCalendar(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrCalendarNotFound) {
			uc.logger.Warn("BookAppointment: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("BookAppointment: failed to get calendar id=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	professional, err := uc.schedulingRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("BookAppointment: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("BookAppointment: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	specialty, err := uc.schedulingRepo.GetSpecialty(ctx, req.SpecialtyID)
	if err != nil {
		if errors.Is(err, schedRepo.ErrSpecialtyNotFound) {
			uc.logger.Warn("BookAppointment: specialty id=%s not found", req.SpecialtyID)
			return nil, ErrSpecialtyNotFound
		}
		uc.logger.Error("BookAppointment: failed to get specialty id=%s: %v", req.SpecialtyID, err)
		return nil, fmt.Errorf("%w: failed to get specialty: %v", ErrInternal, err)
	}

	if _, err := uc.schedulingRepo.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, schedRepo.ErrClientNotFound) {
			uc.logger.Warn("BookAppointment: client id=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("BookAppointment: failed to get client id=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 3. Специалист и услуга должны принадлежать календарю из запроса
	if !professional.BelongsTo(calendar.ID) {
		uc.logger.Warn("BookAppointment: professional id=%s does not belong to calendar id=%s",
			req.ProfessionalID, req.CalendarID)
		return nil, ErrProfessionalMismatch
	}

	if !specialty.BelongsTo(calendar.ID) {
		uc.logger.Warn("BookAppointment: specialty id=%s does not belong to calendar id=%s",
			req.SpecialtyID, req.CalendarID)
		return nil, ErrSpecialtyMismatch
	}

	// 4. Интервал из запроса должен быть непустым
	if err := validateInterval(req); err != nil {
		uc.logger.Warn("BookAppointment: invalid interval: start=%s, end=%s",
			req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
		return nil, err
	}

	// 5. Разрешаем владельца записи из владельца календаря
	ownerID := calendar.OwnerID
	if ownerID == nil {
		if !uc.allowNullOwner {
			uc.logger.Warn("BookAppointment: calendar id=%s has no owner", req.CalendarID)
			return nil, ErrOwnerResolution
		}
		uc.logger.Warn("BookAppointment: calendar id=%s has no owner, booking without one", req.CalendarID)
	}

	// 6. Конец записи всегда пересчитывается из длительности услуги
	endTime := req.StartTime.Add(time.Duration(specialty.DurationMinutes) * time.Minute)

	// 7. Оппортунистически обновляем телефон клиента. Неудача не
	// блокирует бронирование.
	if req.ClientPhone != nil && *req.ClientPhone != "" {
		if err := uc.schedulingRepo.UpdateClientPhone(ctx, req.ClientID, *req.ClientPhone); err != nil {
			uc.logger.Warn("BookAppointment: failed to update client phone: %v", err)
		}
	}

	apt := &domain.Appointment{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		SpecialtyID:    req.SpecialtyID,
		CalendarID:     req.CalendarID,
		OwnerID:        ownerID,
		StartTime:      req.StartTime,
		EndTime:        endTime,
		Status:         status,
		Notes:          req.Notes,
	}

	// 8. Создаем запись. Pending не занимает ресурс, поэтому пишется без
	// проверки пересечений. Confirmed проверяется и вставляется в одной
	// сериализуемой транзакции.
	var created *domain.Appointment

	if status == domain.StatusConfirmed {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			overlapping, err := uc.appointmentRepo.ListConfirmedOverlapping(
				txCtx, req.ProfessionalID, apt.StartTime, apt.EndTime, nil)
			if err != nil {
				uc.logger.Error("BookAppointment: failed to check overlaps: %v", err)
				return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
			}

			if len(overlapping) > 0 {
				uc.logger.Warn("BookAppointment: slot %s-%s already taken for professional id=%s",
					apt.StartTime.Format(time.RFC3339), apt.EndTime.Format(time.RFC3339), req.ProfessionalID)
				return ErrSlotConflict
			}

			created, err = uc.appointmentRepo.Create(txCtx, apt)
			if err != nil {
				if errors.Is(err, apptRepo.ErrSlotConflict) {
					return ErrSlotConflict
				}
				uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			return nil
		})
	} else {
		created, err = uc.appointmentRepo.Create(ctx, apt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create pending appointment: %v", err)
			err = fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
	}

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции - проигранная гонка
		// за слот, клиент может перезапросить свободные слоты
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("BookAppointment: serialization retries exhausted: %v", err)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%s, status=%s", created.ID, created.Status)

	return toResponse(created), nil
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
