package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository/postgres"
)

var bookingCols = []string{
	"id", "reference", "renter_id", "vehicle_id", "start_date", "end_date",
	"pickup_location", "return_location", "status", "total_price_cents", "refunded_cents",
	"modified_count", "history", "proof_of_payment_url", "payment_method",
	"cancelled_on", "cancellation_reason", "created_on", "updated_on",
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	booking := func() *domain.Booking {
		return &domain.Booking{
			Reference:         "BK-ABCD1234",
			RenterID:          1,
			VehicleID:         2,
			StartDate:         start,
			EndDate:           end,
			PickupLocation:    "Airport",
			ReturnLocation:    "Airport",
			Status:            domain.BookingStatusPending,
			TotalPriceCents:   5500,
			ProofOfPaymentURL: "http://localhost/media/proof.jpg",
			PaymentMethod:     "GCASH",
		}
	}

	t.Run("Success", func(t *testing.T) {
		b := booking()
		now := time.Now()
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(b.Reference, b.RenterID, b.VehicleID, b.StartDate, b.EndDate,
				b.PickupLocation, b.ReturnLocation, b.Status, b.TotalPriceCents, b.RefundedCents,
				b.ModifiedCount, sqlmock.AnyArg(), b.ProofOfPaymentURL, b.PaymentMethod,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).AddRow(7, now, now))

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), b.ID)
	})

	t.Run("Overlap Constraint Violation", func(t *testing.T) {
		b := booking()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

		err := repo.Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDateConflict)
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success With History", func(t *testing.T) {
		now := time.Now()
		history := []byte(`[{"changed_at":"2026-09-01T00:00:00Z","previous":{"total_price_cents":3500},"updated":{"total_price_cents":5500}}]`)

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
				7, "BK-ABCD1234", 1, 2, now, now.Add(72*time.Hour),
				"Airport", "Airport", "APPROVED", 5500, 0,
				1, history, "http://localhost/media/proof.jpg", "GCASH",
				nil, "", now, now,
			))

		b, err := repo.GetByID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "BK-ABCD1234", b.Reference)
		assert.Len(t, b.History, 1)
		assert.Equal(t, int32(3500), b.History[0].Previous.TotalPriceCents)
		assert.Equal(t, int32(5500), b.History[0].Updated.TotalPriceCents)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(bookingCols))

		b, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, b)
	})
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	b := &domain.Booking{
		ID:              7,
		StartDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Status:          domain.BookingStatusPending,
		TotalPriceCents: 5500,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, b)
		assert.NoError(t, err)
	})

	t.Run("Overlap Constraint Violation", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

		err := repo.Update(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDateConflict)
	})
}

func TestBookingRepository_ListActiveByVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Excludes Given Booking", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE vehicle_id").
			WithArgs(int32(2), "PENDING", "APPROVED", "ONGOING", int32(7)).
			WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
				8, "BK-EFGH5678", 1, 2, now, now.Add(72*time.Hour),
				"", "", "APPROVED", 3500, 0,
				0, []byte(`[]`), "", "GCASH",
				nil, "", now, now,
			))

		bookings, err := repo.ListActiveByVehicle(ctx, 2, 7)
		assert.NoError(t, err)
		assert.Len(t, bookings, 1)
		assert.Equal(t, int32(8), bookings[0].ID)
	})
}
