package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/repository/postgres"
)

type recordingBus struct {
	events []events.Event
}

func (b *recordingBus) Dispatch(_ context.Context, ev events.Event) {
	b.events = append(b.events, ev)
}

var bookingCols = []string{
	"id", "reference", "renter_id", "vehicle_id", "start_date", "end_date",
	"pickup_location", "return_location", "status", "total_price_cents", "refunded_cents",
	"modified_count", "history", "proof_of_payment_url", "payment_method",
	"cancelled_on", "cancellation_reason", "created_on", "updated_on",
}

var userCols = []string{
	"id", "email", "password_hash", "name", "phone_number", "role",
	"lifetime_spend_cents", "created_on", "updated_on",
}

func newTestRunner(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock, *recordingBus) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bus := &recordingBus{}
	runner := jobs.NewJobRunner(db, postgres.NewStore(db), bus, &config.Config{})
	return runner, mock, bus
}

func TestStartDueBookings(t *testing.T) {
	runner, mock, bus := newTestRunner(t)
	now := time.Now()

	// Both statuses travel as bind parameters, the target first.
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("ONGOING", "APPROVED", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			7, "BK-ABCD1234", 1, 2, now, now.Add(72*time.Hour),
			"Airport", "Airport", "ONGOING", 3500, 0,
			0, []byte(`[]`), "http://localhost/media/proof.jpg", "GCASH",
			nil, "", now, now,
		))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(
			1, "renter@test.com", "x", "Renter", "", "RENTER", 3500, now, now,
		))

	runner.StartDueBookings()

	assert.Len(t, bus.events, 1)
	assert.Equal(t, events.TypeBookingStarted, bus.events[0].Type)
	assert.Equal(t, int32(7), bus.events[0].Booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteFinishedBookingsNoneDue(t *testing.T) {
	runner, mock, bus := newTestRunner(t)

	mock.ExpectQuery("UPDATE bookings").
		WithArgs("COMPLETED", "ONGOING", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	runner.CompleteFinishedBookings()

	assert.Empty(t, bus.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}
