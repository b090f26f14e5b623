package repository

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// AdjustLifetimeSpend adds delta (possibly negative) to the renter's
	// running spend total.
	AdjustLifetimeSpend(ctx context.Context, userID int32, deltaCents int32) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListActiveByVehicle returns the vehicle's bookings in PENDING,
	// APPROVED or ONGOING status, skipping excludeID when non-zero.
	ListActiveByVehicle(ctx context.Context, vehicleID, excludeID int32) ([]domain.Booking, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Transaction, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error)
	MarkRefundedByBooking(ctx context.Context, bookingID int32) error
}

// Tx bundles the repositories bound to a single database transaction.
type Tx struct {
	Users        UserRepository
	Bookings     BookingRepository
	Transactions TransactionRepository
}

// TxRunner executes fn atomically. Writes made through the Tx repositories
// commit together, or roll back together when fn returns an error.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, audience domain.NotificationAudience, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	Trash(ctx context.Context, id, userID int32) error
	PurgeTrashed(ctx context.Context, olderThan time.Time) (int64, error)
}
