package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/repository"
	"drivehub-backend/internal/utils"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	vehicleRepo   repository.VehicleRepository
	userRepo      repository.UserRepository
	atomic        repository.TxRunner
	bus           events.Bus
	fixedFeeCents int32
	maxMods       int32
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	atomic repository.TxRunner,
	bus events.Bus,
	fixedFeeCents int32,
	maxModifications int32,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		vehicleRepo:   vehicleRepo,
		userRepo:      userRepo,
		atomic:        atomic,
		bus:           bus,
		fixedFeeCents: fixedFeeCents,
		maxMods:       maxModifications,
	}
}

// IsAvailable reports whether the candidate range is free of conflicts with
// the vehicle's bookings in an active status. excludeBookingID lets a
// modification skip the booking's own prior dates. The same invariant is
// also enforced by the bookings table's range-exclusion constraint, so two
// concurrent requests that both pass this check cannot both commit.
func (s *bookingService) IsAvailable(ctx context.Context, vehicleID int32, start, end time.Time, excludeBookingID int32) (bool, error) {
	existing, err := s.bookingRepo.ListActiveByVehicle(ctx, vehicleID, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("list active bookings: %w", err)
	}
	for i := range existing {
		if existing[i].Conflicts(start, end) {
			return false, nil
		}
	}
	return true, nil
}

func (s *bookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.RenterID == 0 || input.VehicleID == 0 || input.PickupLocation == "" || input.ReturnLocation == "" || input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}
	if input.ProofOfPaymentURL == "" {
		return nil, fmt.Errorf("%w: proof of payment is required", domain.ErrValidation)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, domain.ErrVehicleUnavailable
	}

	free, err := s.IsAvailable(ctx, input.VehicleID, input.StartDate, input.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.ErrDateConflict
	}

	total := utils.ComputeTotal(input.StartDate, input.EndDate, vehicle.PricePerDayCents, s.fixedFeeCents)

	booking := &domain.Booking{
		Reference:         newBookingReference(),
		RenterID:          input.RenterID,
		VehicleID:         input.VehicleID,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		PickupLocation:    input.PickupLocation,
		ReturnLocation:    input.ReturnLocation,
		Status:            domain.BookingStatusPending,
		TotalPriceCents:   total,
		ProofOfPaymentURL: input.ProofOfPaymentURL,
		PaymentMethod:     input.PaymentMethod,
	}
	// The booking row, the payment row and the lifetime-spend bump land in
	// one database transaction so a failed write leaves nothing behind.
	if err := s.atomic.WithinTx(ctx, func(tx repository.Tx) error {
		if err := tx.Bookings.Create(ctx, booking); err != nil {
			return err
		}
		payment := &domain.Transaction{
			BookingID:     booking.ID,
			UserID:        input.RenterID,
			AmountCents:   total,
			PaymentMethod: input.PaymentMethod,
			Type:          domain.TransactionTypeStandardBooking,
			Status:        domain.TransactionStatusPaid,
		}
		if err := tx.Transactions.Create(ctx, payment); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		if err := tx.Users.AdjustLifetimeSpend(ctx, input.RenterID, total); err != nil {
			return fmt.Errorf("update lifetime spend: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.TypeBookingCreated, booking, 0, "")
	return booking, nil
}

func (s *bookingService) Modify(ctx context.Context, bookingID, requesterID int32, input ModifyBookingInput) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != requesterID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusApproved {
		return nil, domain.ErrNotModifiable
	}
	if !time.Now().Before(booking.StartDate) {
		return nil, domain.ErrModificationWindowClosed
	}
	if booking.ModifiedCount >= s.maxMods {
		return nil, domain.ErrModificationLimitReached
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}

	free, err := s.IsAvailable(ctx, booking.VehicleID, input.StartDate, input.EndDate, booking.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.ErrDateConflict
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, err
	}

	previous := booking.Snapshot()
	newTotal := utils.ComputeTotal(input.StartDate, input.EndDate, vehicle.PricePerDayCents, s.fixedFeeCents)

	// An extension owes the difference against what was already paid. The
	// delta transaction is only recorded when the renter supplied a new
	// payment; a shortening never produces an automatic partial refund.
	delta := newTotal - previous.TotalPriceCents
	paying := delta > 0 && input.ProofOfPaymentURL != "" && input.PaymentMethod != ""
	if paying {
		booking.ProofOfPaymentURL = input.ProofOfPaymentURL
		booking.PaymentMethod = input.PaymentMethod
	}

	booking.StartDate = input.StartDate
	booking.EndDate = input.EndDate
	booking.PickupLocation = input.PickupLocation
	booking.ReturnLocation = input.ReturnLocation
	booking.TotalPriceCents = newTotal

	booking.History = append(booking.History, domain.BookingRevision{
		ChangedAt: time.Now(),
		Previous:  previous,
		Updated:   booking.Snapshot(),
	})

	// Any change, extension or shortening, goes back through approval.
	booking.Status = domain.BookingStatusPending
	booking.ModifiedCount++

	if err := s.atomic.WithinTx(ctx, func(tx repository.Tx) error {
		if paying {
			payment := &domain.Transaction{
				BookingID:     booking.ID,
				UserID:        requesterID,
				AmountCents:   delta,
				PaymentMethod: input.PaymentMethod,
				Type:          domain.TransactionTypeBookingModification,
				Status:        domain.TransactionStatusPaid,
			}
			if err := tx.Transactions.Create(ctx, payment); err != nil {
				return fmt.Errorf("record modification payment: %w", err)
			}
			if err := tx.Users.AdjustLifetimeSpend(ctx, requesterID, delta); err != nil {
				return fmt.Errorf("update lifetime spend: %w", err)
			}
		}
		return tx.Bookings.Update(ctx, booking)
	}); err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.TypeBookingModified, booking, 0, "")
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterID int32, reason string) (int32, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if booking.RenterID != requesterID {
		return 0, domain.ErrForbidden
	}
	if booking.Status.IsTerminal() {
		return 0, domain.ErrAlreadyTerminal
	}
	if booking.Status == domain.BookingStatusOngoing {
		return 0, domain.ErrAlreadyStarted
	}

	// Flat policy: the reservation fee is non-refundable. A time-tiered
	// schedule exists in the product design but is not active.
	refund := booking.TotalPriceCents - s.fixedFeeCents
	if refund < 0 {
		refund = 0
	}

	now := time.Now()
	booking.Status = domain.BookingStatusCancelled
	booking.CancelledOn = &now
	booking.CancellationReason = reason
	booking.RefundedCents = refund
	if err := s.atomic.WithinTx(ctx, func(tx repository.Tx) error {
		if err := tx.Bookings.Update(ctx, booking); err != nil {
			return err
		}
		if err := tx.Transactions.MarkRefundedByBooking(ctx, booking.ID); err != nil {
			return fmt.Errorf("mark transactions refunded: %w", err)
		}
		if err := tx.Users.AdjustLifetimeSpend(ctx, booking.RenterID, -refund); err != nil {
			return fmt.Errorf("update lifetime spend: %w", err)
		}
		return nil
	}); err != nil {
		return 0, err
	}

	s.dispatch(ctx, events.TypeBookingCancelled, booking, refund, reason)
	return refund, nil
}

// CheckModifiable is the read-only guard the client calls before opening
// the modify flow.
func (s *bookingService) CheckModifiable(ctx context.Context, bookingID, requesterID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != requesterID {
		return nil, domain.ErrForbidden
	}
	if booking.Status.IsTerminal() || booking.Status == domain.BookingStatusOngoing {
		return nil, domain.ErrNotModifiable
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, bookingID, requesterID int32, isAdmin bool) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.RenterID != requesterID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListAll(ctx, status, page, pageSize)
}

func (s *bookingService) Approve(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusApproved, events.TypeBookingApproved, "")
}

func (s *bookingService) Decline(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusDeclined, events.TypeBookingDeclined, reason)
}

func (s *bookingService) transition(ctx context.Context, bookingID int32, to domain.BookingStatus, evType events.Type, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, domain.ErrAlreadyTerminal
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: only pending bookings can move to %s", domain.ErrValidation, to)
	}

	booking.Status = to
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.dispatch(ctx, evType, booking, 0, reason)
	return booking, nil
}

func (s *bookingService) dispatch(ctx context.Context, evType events.Type, booking *domain.Booking, refund int32, reason string) {
	renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
	if err != nil {
		renter = nil
	}
	s.bus.Dispatch(ctx, events.Event{
		Type:        evType,
		Booking:     booking,
		Renter:      renter,
		RefundCents: refund,
		Reason:      reason,
		OccurredAt:  time.Now(),
	})
}

func newBookingReference() string {
	return "BK-" + strings.ToUpper(uuid.New().String()[:8])
}
