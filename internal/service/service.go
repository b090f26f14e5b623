package service

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// CreateBookingInput carries everything a renter submits when requesting a
// rental. TotalPrice is never part of the input; it is always derived.
type CreateBookingInput struct {
	RenterID          int32
	VehicleID         int32
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	ReturnLocation    string
	ProofOfPaymentURL string
	PaymentMethod     string
}

type ModifyBookingInput struct {
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	ReturnLocation    string
	ProofOfPaymentURL string
	PaymentMethod     string
}

type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Modify(ctx context.Context, bookingID, requesterID int32, input ModifyBookingInput) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID int32, reason string) (int32, error)
	CheckModifiable(ctx context.Context, bookingID, requesterID int32) (*domain.Booking, error)
	Get(ctx context.Context, bookingID, requesterID int32, isAdmin bool) (*domain.Booking, error)
	ListMine(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	Approve(ctx context.Context, bookingID int32) (*domain.Booking, error)
	Decline(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error)
	IsAvailable(ctx context.Context, vehicleID int32, start, end time.Time, excludeBookingID int32) (bool, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, audience domain.NotificationAudience, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	Trash(ctx context.Context, userID, notificationID int32) error
}

type TransactionService interface {
	ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error)
	ListByBooking(ctx context.Context, bookingID, requesterID int32, isAdmin bool) ([]domain.Transaction, error)
}

type EmailService interface {
	SendBookingStatusEmail(ctx context.Context, toEmail, toName string, booking *domain.Booking, extraMessage string) error
	SendAdminNotification(ctx context.Context, subject, message string) error
}
