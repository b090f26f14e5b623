package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

type emailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	adminEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, adminEmail string) EmailService {
	return &emailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (s *emailService) SendBookingStatusEmail(ctx context.Context, toEmail, toName string, booking *domain.Booking, extraMessage string) error {
	subject := fmt.Sprintf("Booking %s: %s", booking.Reference, statusLabel(booking.Status))

	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking %s is now %s.\n\nPickup: %s on %s\nReturn: %s on %s\nTotal: %d",
		toName,
		booking.Reference,
		statusLabel(booking.Status),
		booking.PickupLocation, booking.StartDate.Format("2006-01-02"),
		booking.ReturnLocation, booking.EndDate.Format("2006-01-02"),
		booking.TotalPriceCents,
	)
	if extraMessage != "" {
		body += "\n\n" + extraMessage
	}
	body += "\n\nBest regards,\nThe DriveHub Team"

	err := s.send(toEmail, toName, subject, body)
	logger.ExternalServiceResult("sendgrid", "SendBookingStatusEmail", err, "to", toEmail, "booking", booking.Reference)
	return err
}

func (s *emailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	err := s.send(s.adminEmail, "Admin", subject, message)
	logger.ExternalServiceResult("sendgrid", "SendAdminNotification", err, "subject", subject)
	return err
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, plainText)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func statusLabel(status domain.BookingStatus) string {
	switch status {
	case domain.BookingStatusPending:
		return "pending approval"
	case domain.BookingStatusApproved:
		return "approved"
	case domain.BookingStatusOngoing:
		return "ongoing"
	case domain.BookingStatusCompleted:
		return "completed"
	case domain.BookingStatusCancelled:
		return "cancelled"
	case domain.BookingStatusDeclined:
		return "declined"
	default:
		return string(status)
	}
}
