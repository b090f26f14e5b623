package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusOngoing   BookingStatus = "ONGOING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusDeclined  BookingStatus = "DECLINED"
)

// ActiveStatuses are the statuses that hold a vehicle's dates. Only these
// participate in availability checks.
var ActiveStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusOngoing,
}

// IsTerminal reports whether no further transition may leave the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusDeclined
}

// MaxModifications caps how many times a renter may modify one booking.
const MaxModifications = 3

// BookingSnapshot is the mutable slice of a booking captured into history
// on every modification.
type BookingSnapshot struct {
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	PickupLocation  string    `json:"pickup_location"`
	ReturnLocation  string    `json:"return_location"`
	TotalPriceCents int32     `json:"total_price_cents"`
}

// BookingRevision records one modification: what the booking looked like
// before and after. Revisions are append-only and never removed.
type BookingRevision struct {
	ChangedAt time.Time       `json:"changed_at"`
	Previous  BookingSnapshot `json:"previous"`
	Updated   BookingSnapshot `json:"updated"`
}

type Booking struct {
	ID                 int32             `json:"id"`
	Reference          string            `json:"reference"`
	RenterID           int32             `json:"renter_id"`
	VehicleID          int32             `json:"vehicle_id"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	PickupLocation     string            `json:"pickup_location"`
	ReturnLocation     string            `json:"return_location"`
	Status             BookingStatus     `json:"status"`
	TotalPriceCents    int32             `json:"total_price_cents"`
	RefundedCents      int32             `json:"refunded_cents"`
	ModifiedCount      int32             `json:"modified_count"`
	History            []BookingRevision `json:"history,omitempty"`
	ProofOfPaymentURL  string            `json:"proof_of_payment_url"`
	PaymentMethod      string            `json:"payment_method"`
	CancelledOn        *time.Time        `json:"cancelled_on,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CreatedOn          time.Time         `json:"created_on"`
	UpdatedOn          time.Time         `json:"updated_on"`
}

// Snapshot captures the booking's current modifiable fields.
func (b *Booking) Snapshot() BookingSnapshot {
	return BookingSnapshot{
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		PickupLocation:  b.PickupLocation,
		ReturnLocation:  b.ReturnLocation,
		TotalPriceCents: b.TotalPriceCents,
	}
}

// Overlaps tests two half-open date ranges [s1,e1) and [s2,e2) for overlap.
// Ranges that only touch at a boundary do not overlap: a booking ending on
// the 15th leaves the vehicle free for one starting on the 15th.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Conflicts reports whether the candidate range collides with this booking's
// dates under the half-open rule.
func (b *Booking) Conflicts(start, end time.Time) bool {
	return Overlaps(start, end, b.StartDate, b.EndDate)
}
