package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, audience, type, title, message, booking_id, is_read, is_trashed, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		n.UserID, n.Audience, n.Type, n.Title, n.Message, n.BookingID, n.IsRead, n.IsTrashed, now,
	).Scan(&n.ID)
}

// List returns untrashed notifications. Renter queries are scoped by
// user_id; admin queries return the whole admin audience.
func (r *notificationRepository) List(ctx context.Context, userID int32, audience domain.NotificationAudience, limit, offset int32) ([]domain.Notification, int32, error) {
	where := sq.And{
		sq.Eq{"audience": audience},
		sq.Eq{"is_trashed": false},
	}
	if audience == domain.NotificationAudienceRenter {
		where = append(where, sq.Eq{"user_id": userID})
	}

	countQuery, countArgs, err := psql.Select("count(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query, args, err := psql.
		Select("id, user_id, audience, type, title, message, booking_id, is_read, is_trashed, created_on").
		From("notifications").
		Where(where).
		OrderBy("created_on DESC").
		Limit(uint64(limit)).
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

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Audience, &n.Type, &n.Title, &n.Message, &n.BookingID, &n.IsRead, &n.IsTrashed, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	return r.flagUpdate(ctx, query, id, userID)
}

func (r *notificationRepository) Trash(ctx context.Context, id, userID int32) error {
	query := `UPDATE notifications SET is_trashed = TRUE WHERE id = $1 AND user_id = $2`
	return r.flagUpdate(ctx, query, id, userID)
}

func (r *notificationRepository) flagUpdate(ctx context.Context, query string, id, userID int32) error {
	result, err := r.db.ExecContext(ctx, query, id, userID)
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

func (r *notificationRepository) PurgeTrashed(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE is_trashed = TRUE AND created_on < $1`
	result, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
