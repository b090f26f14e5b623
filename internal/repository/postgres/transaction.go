package postgres

import (
	"context"
	"database/sql"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type transactionRepository struct {
	db dbtx
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (booking_id, user_id, amount_cents, payment_method, type, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		tx.BookingID, tx.UserID, tx.AmountCents, tx.PaymentMethod, tx.Type, tx.Status, time.Now(),
	).Scan(&tx.ID, &tx.CreatedOn)
}

func (r *transactionRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Transaction, error) {
	query := `SELECT id, booking_id, user_id, amount_cents, payment_method, type, status, created_on
	          FROM transactions WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM transactions WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, booking_id, user_id, amount_cents, payment_method, type, status, created_on
	          FROM transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	return txs, count, err
}

func (r *transactionRepository) MarkRefundedByBooking(ctx context.Context, bookingID int32) error {
	query := `UPDATE transactions SET status = $1 WHERE booking_id = $2`
	result, err := r.db.ExecContext(ctx, query, domain.TransactionStatusRefunded, bookingID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.BookingID, &tx.UserID, &tx.AmountCents, &tx.PaymentMethod, &tx.Type, &tx.Status, &tx.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
