package utils

import (
	"math"
	"time"
)

// RentalDays returns the number of billable days between start and end.
// A rental spanning any fraction of a day beyond whole days counts as a
// full additional day.
func RentalDays(start, end time.Time) int32 {
	if !end.After(start) {
		return 0
	}
	return int32(math.Ceil(end.Sub(start).Hours() / 24))
}

// ComputeTotal calculates a rental's total price: billable days at the
// vehicle's daily rate plus the flat reservation fee charged once per
// booking regardless of duration.
func ComputeTotal(start, end time.Time, pricePerDayCents, fixedFeeCents int32) int32 {
	return RentalDays(start, end)*pricePerDayCents + fixedFeeCents
}
