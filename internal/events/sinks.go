package events

import (
	"context"
	"fmt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

// StatusEmailer sends booking status emails. Satisfied by the SendGrid
// email service; kept narrow here so the dispatcher does not depend on the
// service package.
type StatusEmailer interface {
	SendBookingStatusEmail(ctx context.Context, toEmail, toName string, booking *domain.Booking, extraMessage string) error
}

// notificationSink persists a renter-facing and an admin-facing notification
// row for every lifecycle transition. Admin rows carry user_id 0 and are
// listed by audience.
type notificationSink struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationSink(noteRepo repository.NotificationRepository) Sink {
	return &notificationSink{noteRepo: noteRepo}
}

func (s *notificationSink) Name() string { return "notifications" }

func (s *notificationSink) Deliver(ctx context.Context, ev Event) error {
	renterTitle, renterMsg, adminTitle, adminMsg := notificationCopy(ev)
	bookingID := ev.Booking.ID

	renterNote := &domain.Notification{
		UserID:    ev.Booking.RenterID,
		Audience:  domain.NotificationAudienceRenter,
		Type:      string(ev.Type),
		Title:     renterTitle,
		Message:   renterMsg,
		BookingID: &bookingID,
	}
	if err := s.noteRepo.Create(ctx, renterNote); err != nil {
		return fmt.Errorf("renter notification: %w", err)
	}

	adminNote := &domain.Notification{
		UserID:    0,
		Audience:  domain.NotificationAudienceAdmin,
		Type:      string(ev.Type),
		Title:     adminTitle,
		Message:   adminMsg,
		BookingID: &bookingID,
	}
	if err := s.noteRepo.Create(ctx, adminNote); err != nil {
		return fmt.Errorf("admin notification: %w", err)
	}
	return nil
}

func notificationCopy(ev Event) (renterTitle, renterMsg, adminTitle, adminMsg string) {
	ref := ev.Booking.Reference
	renterName := ""
	if ev.Renter != nil {
		renterName = ev.Renter.Name
	}

	switch ev.Type {
	case TypeBookingCreated:
		return "Booking Received",
			fmt.Sprintf("Your booking %s is pending approval.", ref),
			"New Booking",
			fmt.Sprintf("%s placed booking %s.", renterName, ref)
	case TypeBookingModified:
		return "Modification Received",
			fmt.Sprintf("Your changes to booking %s are pending re-approval.", ref),
			"Booking Modified",
			fmt.Sprintf("%s modified booking %s.", renterName, ref)
	case TypeBookingCancelled:
		return "Booking Cancelled",
			fmt.Sprintf("Your booking %s was cancelled. Refund: %d.", ref, ev.RefundCents),
			"Booking Cancelled",
			fmt.Sprintf("%s cancelled booking %s.", renterName, ref)
	case TypeBookingApproved:
		return "Booking Approved",
			fmt.Sprintf("Your booking %s was approved.", ref),
			"Booking Approved",
			fmt.Sprintf("Booking %s was approved.", ref)
	case TypeBookingDeclined:
		return "Booking Declined",
			fmt.Sprintf("Your booking %s was declined.", ref),
			"Booking Declined",
			fmt.Sprintf("Booking %s was declined.", ref)
	case TypeBookingStarted:
		return "Rental Started",
			fmt.Sprintf("Your rental %s has started.", ref),
			"Rental Started",
			fmt.Sprintf("Booking %s is now ongoing.", ref)
	case TypeBookingCompleted:
		return "Rental Completed",
			fmt.Sprintf("Your rental %s is complete. Thanks for riding with us.", ref),
			"Rental Completed",
			fmt.Sprintf("Booking %s completed.", ref)
	default:
		return "Booking Update", fmt.Sprintf("Booking %s was updated.", ref),
			"Booking Update", fmt.Sprintf("Booking %s was updated.", ref)
	}
}

// emailSink sends status emails on the transitions that notify the renter
// by mail: create, cancel, approve, decline. Modifications only produce
// in-app notifications.
type emailSink struct {
	emailer StatusEmailer
}

func NewEmailSink(emailer StatusEmailer) Sink {
	return &emailSink{emailer: emailer}
}

func (s *emailSink) Name() string { return "email" }

func (s *emailSink) Deliver(ctx context.Context, ev Event) error {
	switch ev.Type {
	case TypeBookingCreated, TypeBookingCancelled, TypeBookingApproved, TypeBookingDeclined:
	default:
		return nil
	}
	if ev.Renter == nil {
		return nil
	}

	extra := ""
	if ev.Type == TypeBookingCancelled {
		extra = fmt.Sprintf("Refunded amount: %d. Reason: %s", ev.RefundCents, ev.Reason)
	}
	return s.emailer.SendBookingStatusEmail(ctx, ev.Renter.Email, ev.Renter.Name, ev.Booking, extra)
}
