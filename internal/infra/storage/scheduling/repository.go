package scheduling

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agendli/scheduling-service/internal/domain"
	"github.com/agendli/scheduling-service/pkg/dbmetrics"
	"github.com/agendli/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-mostly репозиторий справочных сущностей расписания:
// календари, услуги, специалисты, клиенты и шаблоны рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCalendar получает календарь по ID (включая владельца)
func (r *Repository) GetCalendar(ctx context.Context, id uuid.UUID) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"location",
		"created_at",
		"updated_at",
	).
		From("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - build select query: %v", ErrBuildQuery, err)
	}

	var (
		calendar domain.Calendar
		ownerID  uuid.NullUUID
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&calendar.ID,
		&ownerID,
		&calendar.Name,
		&calendar.Location,
		&calendar.CreatedAt,
		&calendar.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCalendar - scan calendar: %v", ErrScanRow, err)
	}

	if ownerID.Valid {
		calendar.OwnerID = &ownerID.UUID
	}

	return &calendar, nil
}

// GetSpecialty получает услугу по ID
func (r *Repository) GetSpecialty(ctx context.Context, id uuid.UUID) (*domain.Specialty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"calendar_id",
		"name",
		"duration_minutes",
		"price",
		"created_at",
		"updated_at",
	).
		From("specialties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - build select query: %v", ErrBuildQuery, err)
	}

	var specialty domain.Specialty

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&specialty.ID,
		&specialty.CalendarID,
		&specialty.Name,
		&specialty.DurationMinutes,
		&specialty.Price,
		&specialty.CreatedAt,
		&specialty.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpecialtyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - scan specialty: %v", ErrScanRow, err)
	}

	return &specialty, nil
}

// GetProfessional получает специалиста по ID
func (r *Repository) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"calendar_id",
		"specialty_id",
		"name",
		"avatar_url",
		"created_at",
		"updated_at",
	).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var professional domain.Professional

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&professional.ID,
		&professional.CalendarID,
		&professional.SpecialtyID,
		&professional.Name,
		&professional.AvatarURL,
		&professional.CreatedAt,
		&professional.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return &professional, nil
}

// GetClient получает клиента по ID
func (r *Repository) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - build select query: %v", ErrBuildQuery, err)
	}

	var client domain.Client

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&client.OwnerID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClient - scan client: %v", ErrScanRow, err)
	}

	return &client, nil
}

// GetWorkingHours получает шаблон рабочих часов специалиста на день недели
// (0 = воскресенье .. 6 = суббота)
func (r *Repository) GetWorkingHours(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"professional_id",
		"day_of_week",
		"is_working_day",
		"start_time",
		"end_time",
	).
		From("working_hours").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"day_of_week":     dayOfWeek,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ProfessionalID,
		&wh.DayOfWeek,
		&wh.IsWorkingDay,
		&wh.StartTime,
		&wh.EndTime,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan working hours: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// UpdateClientPhone обновляет телефон клиента (оппортунистически, при
// бронировании)
func (r *Repository) UpdateClientPhone(ctx context.Context, clientID uuid.UUID, phone string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("phone", phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": clientID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateClientPhone - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateClientPhone - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateClientPhone - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}
