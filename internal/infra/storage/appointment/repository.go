package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/agendli/scheduling-service/internal/domain"
	"github.com/agendli/scheduling-service/pkg/dbmetrics"
	"github.com/agendli/scheduling-service/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки Postgres при нарушении exclusion
// constraint (appointments_confirmed_no_overlap)
const pgExclusionViolation = "23P01"

var appointmentColumns = []string{
	"id",
	"client_id",
	"professional_id",
	"specialty_id",
	"calendar_id",
	"user_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись. ID и таймстемпы генерирует БД.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint на пересекающиеся подтверждённые записи
// превращается в ErrSlotConflict - это штатный исход проигранной гонки
// за слот, а не сбой хранилища.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"professional_id",
			"specialty_id",
			"calendar_id",
			"user_id",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			apt.ClientID,
			apt.ProfessionalID,
			apt.SpecialtyID,
			apt.CalendarID,
			nullableUUID(apt.OwnerID),
			apt.StartTime,
			apt.EndTime,
			apt.Status,
			apt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apt.ID,
		&createdAt,
		&updatedAt,
	)

	if isExclusionViolation(err) {
		return nil, ErrSlotConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// GetDetails получает запись вместе с данными клиента, специалиста и
// услуги (read model для GET /details)
func (r *Repository) GetDetails(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.client_id",
		"a.professional_id",
		"a.specialty_id",
		"a.calendar_id",
		"a.user_id",
		"a.start_time",
		"a.end_time",
		"a.status",
		"a.notes",
		"a.created_at",
		"a.updated_at",
		"c.name",
		"c.email",
		"c.phone",
		"p.name",
		"s.name",
		"s.duration_minutes",
		"s.price",
	).
		From("appointments a").
		Join("clients c ON c.id = a.client_id").
		Join("professionals p ON p.id = a.professional_id").
		Join("specialties s ON s.id = a.specialty_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	var (
		details domain.AppointmentDetails
		ownerID uuid.NullUUID
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&details.ID,
		&details.ClientID,
		&details.ProfessionalID,
		&details.SpecialtyID,
		&details.CalendarID,
		&ownerID,
		&details.StartTime,
		&details.EndTime,
		&details.Status,
		&details.Notes,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.ClientName,
		&details.ClientEmail,
		&details.ClientPhone,
		&details.ProfessionalName,
		&details.SpecialtyName,
		&details.SpecialtyDurationMinutes,
		&details.SpecialtyPrice,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan row: %v", ErrScanRow, err)
	}

	if ownerID.Valid {
		details.OwnerID = &ownerID.UUID
	}

	return &details, nil
}

// ListConfirmedByDay получает подтверждённые записи специалиста, начало
// которых попадает в интервал [dayStart, dayEnd), в хронологическом
// порядке. Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListConfirmedByDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"status":          domain.StatusConfirmed,
		}).
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListConfirmedOverlapping получает подтверждённые записи специалиста,
// пересекающиеся с полуоткрытым интервалом [start, end). Граничащие
// впритык записи не попадают в выборку. excludeID исключает саму
// переносимую запись. Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListConfirmedOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			"status":          domain.StatusConfirmed,
		}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateTime меняет интервал записи (перенос). Статус не меняется.
func (r *Repository) UpdateTime(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTime - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isExclusionViolation(err) {
		return ErrSlotConflict
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateTime - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTime - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus меняет статус записи. Перевод pending -> confirmed вводит
// строку под exclusion constraint, поэтому нарушение и здесь означает
// ErrSlotConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isExclusionViolation(err) {
		return ErrSlotConflict
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку в domain.Appointment
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		apt     domain.Appointment
		ownerID uuid.NullUUID
	)

	err := row.Scan(
		&apt.ID,
		&apt.ClientID,
		&apt.ProfessionalID,
		&apt.SpecialtyID,
		&apt.CalendarID,
		&ownerID,
		&apt.StartTime,
		&apt.EndTime,
		&apt.Status,
		&apt.Notes,
		&apt.CreatedAt,
		&apt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		apt.OwnerID = &ownerID.UUID
	}

	return &apt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// nullableUUID конвертирует *uuid.UUID в uuid.NullUUID для вставки NULL
func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// isExclusionViolation распознаёт нарушение exclusion constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation
	}
	return false
}
