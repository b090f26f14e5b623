package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	// Existing range is [2024-01-10, 2024-01-15).
	s2, e2 := date(2024, 1, 10), date(2024, 1, 15)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"candidate starts inside existing", date(2024, 1, 14), date(2024, 1, 20), true},
		{"candidate starts on existing end boundary", date(2024, 1, 15), date(2024, 1, 20), false},
		{"candidate ends on existing start boundary", date(2024, 1, 1), date(2024, 1, 10), false},
		{"candidate fully contains existing", date(2024, 1, 5), date(2024, 1, 20), true},
		{"candidate fully inside existing", date(2024, 1, 11), date(2024, 1, 13), true},
		{"candidate entirely before", date(2023, 12, 1), date(2023, 12, 5), false},
		{"candidate entirely after", date(2024, 2, 1), date(2024, 2, 5), false},
		{"identical ranges", date(2024, 1, 10), date(2024, 1, 15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start, tt.end, s2, e2))
		})
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	ranges := [][2]time.Time{
		{date(2024, 1, 10), date(2024, 1, 15)},
		{date(2024, 1, 14), date(2024, 1, 20)},
		{date(2024, 1, 15), date(2024, 1, 20)},
		{date(2024, 1, 1), date(2024, 1, 10)},
		{date(2024, 1, 5), date(2024, 1, 20)},
	}

	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"overlap must be symmetric for %v and %v", a, b)
		}
	}
}

func TestBookingConflicts(t *testing.T) {
	b := &Booking{StartDate: date(2024, 1, 10), EndDate: date(2024, 1, 15)}
	assert.True(t, b.Conflicts(date(2024, 1, 14), date(2024, 1, 16)))
	assert.False(t, b.Conflicts(date(2024, 1, 15), date(2024, 1, 16)))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusDeclined.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusApproved.IsTerminal())
	assert.False(t, BookingStatusOngoing.IsTerminal())
}
