package domain

import "time"

type TransactionType string

const (
	TransactionTypeStandardBooking     TransactionType = "STANDARD_BOOKING"
	TransactionTypeBookingModification TransactionType = "BOOKING_MODIFICATION"
)

type TransactionStatus string

const (
	TransactionStatusPaid     TransactionStatus = "PAID"
	TransactionStatusRefunded TransactionStatus = "REFUNDED"
)

type Transaction struct {
	ID            int32             `json:"id"`
	BookingID     int32             `json:"booking_id"`
	UserID        int32             `json:"user_id"`
	AmountCents   int32             `json:"amount_cents"`
	PaymentMethod string            `json:"payment_method"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	CreatedOn     time.Time         `json:"created_on"`
}
