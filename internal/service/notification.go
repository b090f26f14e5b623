package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, audience domain.NotificationAudience, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, audience, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) Trash(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.Trash(ctx, notificationID, userID)
}
