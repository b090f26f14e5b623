package http

import (
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	TotalCount    int32                 `json:"total_count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	page, pageSize := pagination(r)

	audience := domain.NotificationAudienceRenter
	if claims.Role == domain.UserRoleAdmin {
		audience = domain.NotificationAudienceAdmin
	}

	notes, count, err := h.noteSvc.GetNotifications(r.Context(), claims.UserID, audience, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, TotalCount: count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.noteSvc.MarkAsRead(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *NotificationHandler) Trash(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.noteSvc.Trash(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
