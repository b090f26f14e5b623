package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int32
	}{
		{"three whole days", day(2024, 3, 1), day(2024, 3, 4), 3},
		{"one day", day(2024, 3, 1), day(2024, 3, 2), 1},
		{"fractional day rounds up", day(2024, 3, 1), day(2024, 3, 2).Add(6 * time.Hour), 2},
		{"same instant", day(2024, 3, 1), day(2024, 3, 1), 0},
		{"end before start", day(2024, 3, 4), day(2024, 3, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	start := day(2024, 3, 1)
	end := start.AddDate(0, 0, 3)

	assert.Equal(t, int32(3500), ComputeTotal(start, end, 1000, 500))

	// Pure function: same inputs always yield the same total.
	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(3500), ComputeTotal(start, end, 1000, 500))
	}

	// The fee applies once, not per day.
	assert.Equal(t, int32(1500), ComputeTotal(start, start.AddDate(0, 0, 1), 1000, 500))
	assert.Equal(t, int32(10500), ComputeTotal(start, start.AddDate(0, 0, 10), 1000, 500))
}

func TestComputeTotalFractionalSpanBillsExtraDay(t *testing.T) {
	start := day(2024, 3, 1).Add(10 * time.Hour)
	end := day(2024, 3, 4).Add(14 * time.Hour) // 3 days + 4 hours

	assert.Equal(t, int32(4*1000+500), ComputeTotal(start, end, 1000, 500))
}
