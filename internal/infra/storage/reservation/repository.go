package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/infra/storage/database"
	"github.com/m04kA/venuebook/pkg/dbmetrics"
	"github.com/m04kA/venuebook/pkg/psqlbuilder"
	"github.com/m04kA/venuebook/pkg/types"
)

const (
	tableReservations = "reservations"
	tableSlots        = "reservation_slots"
)

var reservationColumns = []string{
	"id",
	"booking_ref",
	"court_id",
	"venue_id",
	"user_id",
	"booking_date",
	"start_minute",
	"end_minute",
	"price",
	"currency",
	"status",
	"timezone",
	"payment_method",
	"payment_token",
	"cancelled_at",
	"cancelled_by",
	"created_at",
	"updated_at",
}

// Repository хранилище броней
// Занятость корта хранится в reservation_slots: одна строка на каждый отрезок длиной bucketMinutes,
// первичный ключ (court_id, booking_date, slot_start) гарантирует отсутствие пересечений
type Repository struct {
	db            DBExecutor
	sb            squirrel.StatementBuilderType
	bucketMinutes int
}

// NewRepository создает репозиторий для указанного SQL диалекта
func NewRepository(db DBExecutor, dialect string, bucketMinutes int) (*Repository, error) {
	sb, err := psqlbuilder.For(dialect)
	if err != nil {
		return nil, err
	}
	if bucketMinutes <= 0 {
		return nil, fmt.Errorf("reservation.repository: bucket minutes must be positive, got %d", bucketMinutes)
	}
	return &Repository{db: db, sb: sb, bucketMinutes: bucketMinutes}, nil
}

// Create сохраняет бронь и занимает её отрезки корта
// Должен вызываться внутри транзакции: при ErrSlotTaken транзакцию нужно откатить,
// чтобы не оставить частично занятые отрезки
// Границы интервала должны лежать на сетке bucketMinutes, иначе соседние брони делили бы отрезок
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrTransactionRequired
	}
	if !r.aligned(res.Interval) {
		return nil, fmt.Errorf("%w: interval=%s grid=%dm", ErrUnalignedInterval, res.Interval, r.bucketMinutes)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(tableReservations).
		Columns(
			"booking_ref",
			"court_id",
			"venue_id",
			"user_id",
			"booking_date",
			"start_minute",
			"end_minute",
			"price",
			"currency",
			"status",
			"timezone",
			"payment_method",
			"payment_token",
			"created_at",
			"updated_at",
		).
		Values(
			res.BookingRef,
			res.CourtID,
			res.VenueID,
			res.UserID,
			res.Date,
			res.Interval.Start,
			res.Interval.End,
			int64(res.Price),
			res.Currency,
			string(res.Status),
			res.Timezone,
			string(res.PaymentMethod),
			res.PaymentToken,
			res.CreatedAt,
			res.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.claimSlots(ctx, executor, res); err != nil {
		return nil, err
	}

	return res, nil
}

// claimSlots вставляет строки занятости; конфликт первичного ключа означает, что отрезок занят
func (r *Repository) claimSlots(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	insert := r.sb.Insert(tableSlots).Columns("court_id", "booking_date", "slot_start", "reservation_id")
	for _, start := range r.buckets(res.Interval) {
		insert = insert.Values(res.CourtID, res.Date, start, res.ID)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: claimSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: court=%d date=%s interval=%s", ErrSlotTaken, res.CourtID, res.Date, res.Interval)
		}
		return fmt.Errorf("%w: claimSlots - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) aligned(interval domain.Interval) bool {
	return interval.Start.Minutes()%r.bucketMinutes == 0 && interval.End.Minutes()%r.bucketMinutes == 0
}

// buckets начала отрезков, покрывающих выровненный интервал
func (r *Repository) buckets(interval domain.Interval) []int {
	from := interval.Start.Minutes()
	to := interval.End.Minutes()

	starts := make([]int, 0, (to-from)/r.bucketMinutes)
	for m := from; m < to; m += r.bucketMinutes {
		starts = append(starts, m)
	}
	return starts
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// ListByUser история броней пользователя, сначала самые поздние
// Фильтр по статусу применяется к хранимому статусу; completed вычисляется выше
func (r *Repository) ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.sb.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "start_minute DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByBookingRef брони одного бронирования в порядке начала
func (r *Repository) ListByBookingRef(ctx context.Context, bookingRef string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		OrderBy("start_minute ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingRef - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingRef - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByCourtAndDate брони корта на дату в порядке начала
func (r *Repository) ListByCourtAndDate(ctx context.Context, courtID int64, date types.Date, includeCancelled bool) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.sb.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"court_id": courtID, "booking_date": date}).
		OrderBy("start_minute ASC", "id ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusConfirmed)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel отменяет подтвержденную бронь и освобождает её отрезки
// Условие status = confirmed делает повторную отмену безопасной: вторая получит ErrNotConfirmed
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy int64, at time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableReservations).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", at).
		Set("cancelled_by", cancelledBy).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusConfirmed)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotConfirmed
	}

	query, args, err = r.sb.Delete(tableSlots).
		Where(squirrel.Eq{"reservation_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Cancel - release slots: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res           domain.Reservation
		price         int64
		status        string
		paymentMethod string
		cancelledAt   types.NullTime
		cancelledBy   sql.NullInt64
		createdAt     types.NullTime
		updatedAt     types.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.BookingRef,
		&res.CourtID,
		&res.VenueID,
		&res.UserID,
		&res.Date,
		&res.Interval.Start,
		&res.Interval.End,
		&price,
		&res.Currency,
		&status,
		&res.Timezone,
		&paymentMethod,
		&res.PaymentToken,
		&cancelledAt,
		&cancelledBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Price = types.Money(price)
	res.Status = domain.ReservationStatus(status)
	res.PaymentMethod = domain.PaymentMethod(paymentMethod)
	res.CancelledAt = cancelledAt.Ptr()
	if cancelledBy.Valid {
		by := cancelledBy.Int64
		res.CancelledBy = &by
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	list := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		list = append(list, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}
