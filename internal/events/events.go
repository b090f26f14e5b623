package events

import (
	"time"

	"drivehub-backend/internal/domain"
)

type Type string

const (
	TypeBookingCreated   Type = "BOOKING_CREATED"
	TypeBookingModified  Type = "BOOKING_MODIFIED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
	TypeBookingApproved  Type = "BOOKING_APPROVED"
	TypeBookingDeclined  Type = "BOOKING_DECLINED"
	TypeBookingStarted   Type = "BOOKING_STARTED"
	TypeBookingCompleted Type = "BOOKING_COMPLETED"
)

// Event is a booking state transition published by the lifecycle service.
// Delivery to email, the notification store, and the realtime channel
// happens in the dispatcher, outside the primary write path.
type Event struct {
	Type        Type            `json:"type"`
	Booking     *domain.Booking `json:"booking"`
	Renter      *domain.User    `json:"-"`
	RefundCents int32           `json:"refund_cents,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
