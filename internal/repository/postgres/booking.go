package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

// psql builds queries with $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const bookingColumns = `id, reference, renter_id, vehicle_id, start_date, end_date,
	pickup_location, return_location, status, total_price_cents, refunded_cents,
	modified_count, history, proof_of_payment_url, payment_method,
	cancelled_on, cancellation_reason, created_on, updated_on`

type bookingRepository struct {
	db dbtx
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// isExclusionViolation matches the bookings_no_overlap constraint: the
// schema excludes two active bookings of the same vehicle with overlapping
// date ranges, which closes the check-then-write race at the storage layer.
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23P01"
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	history, err := json.Marshal(b.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	query := `INSERT INTO bookings (reference, renter_id, vehicle_id, start_date, end_date,
	          pickup_location, return_location, status, total_price_cents, refunded_cents,
	          modified_count, history, proof_of_payment_url, payment_method, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id, created_on, updated_on`
	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		b.Reference, b.RenterID, b.VehicleID, b.StartDate, b.EndDate,
		b.PickupLocation, b.ReturnLocation, b.Status, b.TotalPriceCents, b.RefundedCents,
		b.ModifiedCount, history, b.ProofOfPaymentURL, b.PaymentMethod, now, now,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if isExclusionViolation(err) {
		return domain.ErrDateConflict
	}
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	history, err := json.Marshal(b.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	query := `UPDATE bookings SET start_date=$1, end_date=$2, pickup_location=$3,
	          return_location=$4, status=$5, total_price_cents=$6, refunded_cents=$7,
	          modified_count=$8, history=$9, proof_of_payment_url=$10, payment_method=$11,
	          cancelled_on=$12, cancellation_reason=$13, updated_on=$14
	          WHERE id=$15`
	_, err = r.db.ExecContext(ctx, query,
		b.StartDate, b.EndDate, b.PickupLocation, b.ReturnLocation, b.Status,
		b.TotalPriceCents, b.RefundedCents, b.ModifiedCount, history,
		b.ProofOfPaymentURL, b.PaymentMethod, b.CancelledOn, b.CancellationReason,
		time.Now(), b.ID,
	)
	if isExclusionViolation(err) {
		return domain.ErrDateConflict
	}
	return err
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, sq.Eq{"renter_id": renterID}, status, page, pageSize)
}

func (r *bookingRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, nil, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, base sq.Sqlizer, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := sq.And{}
	if base != nil {
		where = append(where, base)
	}
	if status != "" {
		where = append(where, sq.Eq{"status": status})
	}

	builder := psql.Select(bookingColumns).From("bookings")
	countBuilder := psql.Select("count(*)").From("bookings")
	if len(where) > 0 {
		builder = builder.Where(where)
		countBuilder = countBuilder.Where(where)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query, args, err := builder.
		OrderBy("created_on DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListActiveByVehicle(ctx context.Context, vehicleID, excludeID int32) ([]domain.Booking, error) {
	builder := psql.Select(bookingColumns).
		From("bookings").
		Where(sq.Eq{"vehicle_id": vehicleID}).
		Where(sq.Eq{"status": domain.ActiveStatuses})
	if excludeID != 0 {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var history []byte
	err := row.Scan(
		&b.ID, &b.Reference, &b.RenterID, &b.VehicleID, &b.StartDate, &b.EndDate,
		&b.PickupLocation, &b.ReturnLocation, &b.Status, &b.TotalPriceCents, &b.RefundedCents,
		&b.ModifiedCount, &history, &b.ProofOfPaymentURL, &b.PaymentMethod,
		&b.CancelledOn, &b.CancellationReason, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &b.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}
	return b, nil
}
