package jobs

import (
	"context"
	"time"

	"drivehub-backend/internal/logger"
)

const trashedNotificationRetention = 30 * 24 * time.Hour

// PurgeTrashedNotifications removes trashed notifications past the retention
// window.
func (jr *JobRunner) PurgeTrashedNotifications() {
	jr.runWithRecovery("PurgeTrashedNotifications", func() {
		ctx := context.Background()

		cutoff := time.Now().Add(-trashedNotificationRetention)
		purged, err := jr.store.NotificationRepository.PurgeTrashed(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge trashed notifications", "error", err)
			return
		}

		logger.Info("Purged trashed notifications", "count", purged, "cutoff", cutoff.Format("2006-01-02"))
	})
}
