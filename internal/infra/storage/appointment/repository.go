package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"booking_reference",
	"branch_id",
	"customer_first_name",
	"customer_last_name",
	"customer_email",
	"customer_phone",
	"appointment_date_time",
	"duration_minutes",
	"purpose",
	"notes",
	"status",
	"created_at",
	"updated_at",
	"cancelled_at",
	"cancellation_reason",
}

// Repository репозиторий записей на прием (Postgres)
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает репозиторий. Время из БД приводится к loc (часовой пояс филиалов).
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// FindByReference получает запись по номеру бронирования
func (r *Repository) FindByReference(ctx context.Context, reference string) (*domain.Appointment, error) {
	return r.findOne(ctx, "FindByReference", squirrel.Eq{"booking_reference": reference}, false)
}

// FindByReferenceForUpdate получает запись и блокирует строку до конца транзакции.
// Вне транзакции работает как FindByReference.
func (r *Repository) FindByReferenceForUpdate(ctx context.Context, reference string) (*domain.Appointment, error) {
	return r.findOne(ctx, "FindByReferenceForUpdate", squirrel.Eq{"booking_reference": reference}, dbmetrics.IsInTransaction(ctx))
}

// FindByEmailAndReference получает запись по email клиента (без учета регистра) и номеру
func (r *Repository) FindByEmailAndReference(ctx context.Context, email, reference string) (*domain.Appointment, error) {
	where := squirrel.And{
		squirrel.Eq{"booking_reference": reference},
		squirrel.Expr("LOWER(customer_email) = LOWER(?)", strings.TrimSpace(email)),
	}
	return r.findOne(ctx, "FindByEmailAndReference", where, false)
}

// ExistsByReference проверяет, занят ли номер бронирования
func (r *Repository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"booking_reference": reference}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// CountActiveAtExactTime считает активные (PENDING, CONFIRMED) записи филиала,
// начинающиеся ровно в момент at
func (r *Repository) CountActiveAtExactTime(ctx context.Context, branchID int64, at time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"branch_id":             branchID,
			"appointment_date_time": at,
			"status":                activeStatusNames(),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAtExactTime - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAtExactTime - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// FindActiveByBranchAndTimeRange возвращает активные записи филиала в полуинтервале [from, to)
func (r *Repository) FindActiveByBranchAndTimeRange(ctx context.Context, branchID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"branch_id": branchID, "status": activeStatusNames()}).
		Where(squirrel.GtOrEq{"appointment_date_time": from}).
		Where(squirrel.Lt{"appointment_date_time": to}).
		OrderBy("appointment_date_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByBranchAndTimeRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByBranchAndTimeRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.Appointment
	for rows.Next() {
		appt, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindActiveByBranchAndTimeRange - scan: %w", ErrScanRow, err)
		}
		result = append(result, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindActiveByBranchAndTimeRange - rows: %w", ErrScanRow, err)
	}

	return result, nil
}

// LockSlot берет транзакционную advisory-блокировку на пару (филиал, время начала).
// Конкурентные создания на один и тот же слот выполняются строго по очереди.
func (r *Repository) LockSlot(ctx context.Context, branchID int64, at time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlot", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := fmt.Sprintf("%d:%s", branchID, at.UTC().Format(time.RFC3339))
	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockSlot - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockSlot - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// Save вставляет новую запись (ID == 0) или обновляет существующую.
// Возвращает сохраненную запись.
func (r *Repository) Save(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt.ID == 0 {
		return r.insert(ctx, appt)
	}
	return r.update(ctx, appt)
}

func (r *Repository) insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:]...).
		Values(insertValues(appt)...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	saved := appt.Clone()
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, appt.BookingReference)
		}
		return nil, fmt.Errorf("%w: Save - execute insert: %w", ErrExecQuery, err)
	}

	return saved, nil
}

// insertValues значения для columns[1:] в том же порядке.
// Указатели без значения уходят в БД как NULL.
func insertValues(appt *domain.Appointment) []interface{} {
	return []interface{}{
		appt.BookingReference,
		appt.BranchID,
		appt.CustomerFirstName,
		appt.CustomerLastName,
		appt.CustomerEmail,
		appt.CustomerPhone,
		appt.AppointmentDateTime,
		appt.DurationMinutes,
		appt.Purpose,
		appt.Notes,
		appt.Status,
		appt.CreatedAt,
		appt.UpdatedAt,
		appt.CancelledAt,
		appt.CancellationReason,
	}
}

func (r *Repository) update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(map[string]interface{}{
			"customer_first_name":   appt.CustomerFirstName,
			"customer_last_name":    appt.CustomerLastName,
			"customer_email":        appt.CustomerEmail,
			"customer_phone":        appt.CustomerPhone,
			"appointment_date_time": appt.AppointmentDateTime,
			"duration_minutes":      appt.DurationMinutes,
			"purpose":               appt.Purpose,
			"notes":                 appt.Notes,
			"status":                appt.Status,
			"updated_at":            appt.UpdatedAt,
			"cancelled_at":          appt.CancelledAt,
			"cancellation_reason":   appt.CancellationReason,
		}).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appt.Clone(), nil
}

func (r *Repository) findOne(ctx context.Context, op string, where squirrel.Sqlizer, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table).Where(where).Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	appt, err := r.scan(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, op, err)
	}

	return appt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scan(row rowScanner) (*domain.Appointment, error) {
	var (
		appt        domain.Appointment
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.BookingReference,
		&appt.BranchID,
		&appt.CustomerFirstName,
		&appt.CustomerLastName,
		&appt.CustomerEmail,
		&appt.CustomerPhone,
		&appt.AppointmentDateTime,
		&appt.DurationMinutes,
		&appt.Purpose,
		&appt.Notes,
		&appt.Status,
		&appt.CreatedAt,
		&appt.UpdatedAt,
		&cancelledAt,
		&appt.CancellationReason,
	)
	if err != nil {
		return nil, err
	}

	appt.AppointmentDateTime = appt.AppointmentDateTime.In(r.loc)
	appt.CreatedAt = appt.CreatedAt.In(r.loc)
	appt.UpdatedAt = appt.UpdatedAt.In(r.loc)
	if cancelledAt.Valid {
		t := cancelledAt.Time.In(r.loc)
		appt.CancelledAt = &t
	}

	return &appt, nil
}

func activeStatusNames() []string {
	names := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		names[i] = s.String()
	}
	return names
}
