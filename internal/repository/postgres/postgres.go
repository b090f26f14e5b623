package postgres

import (
	"context"
	"database/sql"

	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is the slice of database/sql shared by *sql.DB and *sql.Tx, letting
// one repository implementation serve both.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.TransactionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// WithinTx runs fn inside one database transaction. A booking write and its
// payment and lifetime-spend side effects either all commit or none do.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(repository.Tx{
		Users:        &userRepository{db: dbTx},
		Bookings:     &bookingRepository{db: dbTx},
		Transactions: &transactionRepository{db: dbTx},
	})
	if err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", "error", rbErr)
		}
		return err
	}
	return dbTx.Commit()
}
