package domain

import "time"

type NotificationAudience string

const (
	NotificationAudienceRenter NotificationAudience = "RENTER"
	NotificationAudienceAdmin  NotificationAudience = "ADMIN"
)

type Notification struct {
	ID        int32                `json:"id"`
	UserID    int32                `json:"user_id"`
	Audience  NotificationAudience `json:"audience"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	BookingID *int32               `json:"booking_id,omitempty"`
	IsRead    bool                 `json:"is_read"`
	IsTrashed bool                 `json:"is_trashed"`
	CreatedOn time.Time            `json:"created_on"`
}
