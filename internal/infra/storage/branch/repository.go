package branch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "branches"

var columns = []string{
	"id",
	"code",
	"name",
	"address",
	"phone_number",
	"email",
	"opening_time",
	"closing_time",
	"max_concurrent_appointments_per_slot",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий филиалов (Postgres)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByID получает филиал по ID (в том числе неактивный)
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBranch(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan branch: %w", ErrScanRow, err)
	}

	return b, nil
}

// List возвращает страницу всех филиалов, отсортированных по названию
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.Branch, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.query(ctx, "List", builder)
}

// Count возвращает общее количество филиалов
func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, "Count", nil)
}

// Search ищет активные филиалы по подстроке в названии, адресе или коде
func (r *Repository) Search(ctx context.Context, term string, limit, offset int) ([]*domain.Branch, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(searchCondition(term)).
		OrderBy("name ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.query(ctx, "Search", builder)
}

// CountSearch возвращает количество активных филиалов, подходящих под поиск
func (r *Repository) CountSearch(ctx context.Context, term string) (int64, error) {
	return r.count(ctx, "CountSearch", searchCondition(term))
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan branch: %w", ErrScanRow, op, err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows: %w", ErrScanRow, op, err)
	}

	return branches, nil
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %w", ErrScanRow, op, err)
	}

	return total, nil
}

func searchCondition(term string) squirrel.Sqlizer {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	return squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Or{
			squirrel.Expr("LOWER(name) LIKE ?", pattern),
			squirrel.Expr("LOWER(address) LIKE ?", pattern),
			squirrel.Expr("LOWER(code) LIKE ?", pattern),
		},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var (
		b                  domain.Branch
		phone, email       sql.NullString
		createdAt, updated sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.Name,
		&b.Address,
		&phone,
		&email,
		&b.OpeningTime,
		&b.ClosingTime,
		&b.MaxConcurrentAppointmentsPerSlot,
		&b.IsActive,
		&createdAt,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	b.PhoneNumber = phone.String
	b.Email = email.String
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updated.Time

	return &b, nil
}
