package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type userRepository struct {
	db dbtx
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, phone_number, role, lifetime_spend_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.PhoneNumber, u.Role, u.LifetimeSpendCents, now, now,
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, phone_number, role, lifetime_spend_cents, created_on, updated_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, phone_number, role, lifetime_spend_cents, created_on, updated_on
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.PhoneNumber, &u.Role, &u.LifetimeSpendCents, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, phone_number=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.PhoneNumber, time.Now(), u.ID)
	return err
}

func (r *userRepository) AdjustLifetimeSpend(ctx context.Context, userID int32, deltaCents int32) error {
	query := `UPDATE users SET lifetime_spend_cents = lifetime_spend_cents + $1, updated_on=$2 WHERE id=$3`
	result, err := r.db.ExecContext(ctx, query, deltaCents, time.Now(), userID)
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
