package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type transactionService struct {
	txRepo      repository.TransactionRepository
	bookingRepo repository.BookingRepository
}

func NewTransactionService(txRepo repository.TransactionRepository, bookingRepo repository.BookingRepository) TransactionService {
	return &transactionService{txRepo: txRepo, bookingRepo: bookingRepo}
}

func (s *transactionService) ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.txRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *transactionService) ListByBooking(ctx context.Context, bookingID, requesterID int32, isAdmin bool) ([]domain.Transaction, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.RenterID != requesterID {
		return nil, domain.ErrForbidden
	}
	return s.txRepo.ListByBooking(ctx, bookingID)
}
