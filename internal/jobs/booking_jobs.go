package jobs

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/logger"
)

const (
	startDueBookingsQuery = `
		UPDATE bookings
		SET status = $1,
		    updated_on = NOW()
		WHERE status = $2
		  AND start_date <= $3
		RETURNING id`

	completeFinishedBookingsQuery = `
		UPDATE bookings
		SET status = $1,
		    updated_on = NOW()
		WHERE status = $2
		  AND end_date <= $3
		RETURNING id`
)

// StartDueBookings flips APPROVED bookings to ONGOING once their start date
// arrives.
func (jr *JobRunner) StartDueBookings() {
	jr.runWithRecovery("StartDueBookings", func() {
		jr.transitionBookings(
			startDueBookingsQuery,
			domain.BookingStatusApproved,
			domain.BookingStatusOngoing,
			events.TypeBookingStarted,
		)
	})
}

// CompleteFinishedBookings flips ONGOING bookings to COMPLETED once their end
// date has passed. End dates are exclusive, so a booking ending today is done.
func (jr *JobRunner) CompleteFinishedBookings() {
	jr.runWithRecovery("CompleteFinishedBookings", func() {
		jr.transitionBookings(
			completeFinishedBookingsQuery,
			domain.BookingStatusOngoing,
			domain.BookingStatusCompleted,
			events.TypeBookingCompleted,
		)
	})
}

func (jr *JobRunner) transitionBookings(query string, from, to domain.BookingStatus, eventType events.Type) {
	ctx := context.Background()

	rows, err := jr.db.QueryContext(ctx, query, string(to), string(from), time.Now().Format("2006-01-02"))
	if err != nil {
		logger.Error("Failed to transition bookings", "from", from, "to", to, "error", err)
		return
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			logger.Error("Failed to scan transitioned booking", "error", err)
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error iterating transitioned bookings", "error", err)
		return
	}

	logger.Info("Transitioned bookings", "from", from, "to", to, "count", len(ids))

	for _, id := range ids {
		booking, err := jr.store.BookingRepository.GetByID(ctx, id)
		if err != nil {
			logger.Error("Failed to load transitioned booking", "booking_id", id, "error", err)
			continue
		}
		renter, err := jr.store.UserRepository.GetByID(ctx, booking.RenterID)
		if err != nil {
			logger.Error("Failed to load renter for transitioned booking", "booking_id", id, "error", err)
			continue
		}
		jr.bus.Dispatch(ctx, events.Event{
			Type:       eventType,
			Booking:    booking,
			Renter:     renter,
			OccurredAt: time.Now(),
		})
	}
}
