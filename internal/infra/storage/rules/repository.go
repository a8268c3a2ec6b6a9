package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/infra/storage/database"
	"github.com/m04kA/venuebook/pkg/dbmetrics"
	"github.com/m04kA/venuebook/pkg/psqlbuilder"
	"github.com/m04kA/venuebook/pkg/types"
)

const tableRules = "booking_rules"

var rulesColumns = []string{
	"id",
	"venue_id",
	"court_id",
	"slot_minutes",
	"max_advance_days",
	"min_notice_minutes",
	"cancel_cutoff_minutes",
	"created_at",
	"updated_at",
}

// Repository хранилище правил бронирования площадок
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает репозиторий для указанного SQL диалекта
func NewRepository(db DBExecutor, dialect string) (*Repository, error) {
	sb, err := psqlbuilder.For(dialect)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, sb: sb}, nil
}

// Create сохраняет правила. Для одной области (площадка или корт площадки) допускаются одни правила
func (r *Repository) Create(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(tableRules).
		Columns(
			"venue_id",
			"court_id",
			"slot_minutes",
			"max_advance_days",
			"min_notice_minutes",
			"cancel_cutoff_minutes",
			"created_at",
			"updated_at",
		).
		Values(
			rules.VenueID,
			rules.CourtID,
			rules.SlotMinutes,
			rules.MaxAdvanceDays,
			rules.MinNoticeMinutes,
			rules.CancelCutoffMinutes,
			rules.CreatedAt,
			rules.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rules.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateRules
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rules, nil
}

// GetByScope правила ровно для указанной области: courtID == nil - правила всей площадки
func (r *Repository) GetByScope(ctx context.Context, venueID int64, courtID *int64) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.sb.Select(rulesColumns...).
		From(tableRules).
		Where(squirrel.Eq{"venue_id": venueID})

	// squirrel.Eq с nil превращается в IS NULL
	if courtID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": *courtID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - build select query: %v", ErrBuildQuery, err)
	}

	rules, err := scanRules(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - scan rules: %v", ErrScanRow, err)
	}
	return rules, nil
}

// GetEffective правила с учетом иерархии:
// 1. Правила корта (venueID, courtID)
// 2. Правила площадки (venueID, NULL)
//
// Если правила не найдены ни на одном уровне, возвращает ErrRulesNotFound,
// и вызывающий использует глобальные значения
func (r *Repository) GetEffective(ctx context.Context, venueID, courtID int64) (*domain.BookingRules, error) {
	rules, err := r.GetByScope(ctx, venueID, &courtID)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("%w: GetEffective - court level: %v", ErrExecQuery, err)
	}

	rules, err = r.GetByScope(ctx, venueID, nil)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("%w: GetEffective - venue level: %v", ErrExecQuery, err)
	}

	return nil, ErrRulesNotFound
}

// ListByVenue все правила площадки, правила всей площадки первыми
func (r *Repository) ListByVenue(ctx context.Context, venueID int64) ([]*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(rulesColumns...).
		From(tableRules).
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("COALESCE(court_id, 0) ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.BookingRules, 0)
	for rows.Next() {
		rules, err := scanRules(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByVenue - scan row: %v", ErrScanRow, err)
		}
		list = append(list, rules)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}

// Update обновляет значения правил по ID
func (r *Repository) Update(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableRules).
		Set("slot_minutes", rules.SlotMinutes).
		Set("max_advance_days", rules.MaxAdvanceDays).
		Set("min_notice_minutes", rules.MinNoticeMinutes).
		Set("cancel_cutoff_minutes", rules.CancelCutoffMinutes).
		Set("updated_at", rules.UpdatedAt).
		Where(squirrel.Eq{"id": rules.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrRulesNotFound
	}

	return rules, nil
}

// DeleteByScope удаляет правила области, после чего действуют правила уровнем выше
func (r *Repository) DeleteByScope(ctx context.Context, venueID int64, courtID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := r.sb.Delete(tableRules).Where(squirrel.Eq{"venue_id": venueID})
	if courtID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"court_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"court_id": *courtID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByScope - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByScope - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByScope - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRulesNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRules(row rowScanner) (*domain.BookingRules, error) {
	var (
		rules     domain.BookingRules
		courtID   sql.NullInt64
		createdAt types.NullTime
		updatedAt types.NullTime
	)

	err := row.Scan(
		&rules.ID,
		&rules.VenueID,
		&courtID,
		&rules.SlotMinutes,
		&rules.MaxAdvanceDays,
		&rules.MinNoticeMinutes,
		&rules.CancelCutoffMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if courtID.Valid {
		id := courtID.Int64
		rules.CourtID = &id
	}
	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}
