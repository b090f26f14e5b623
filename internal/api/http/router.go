package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"drivehub-backend/internal/security"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Vehicle      *VehicleHandler
	Notification *NotificationHandler
	Transaction  *TransactionHandler
	Media        *MediaHandler
}

// NewRouter builds the full API surface. All /api/v1 routes except auth,
// vehicle browsing and availability checks require a valid access token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.Vehicle.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", h.Vehicle.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/availability", h.Booking.Availability).Methods(http.MethodGet)
	api.PathPrefix("/media/").Handler(
		http.StripPrefix("/api/v1/media/", http.HandlerFunc(h.Media.DownloadByPath)),
	).Methods(http.MethodGet)

	// Authenticated renter routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/mine", h.Booking.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}", h.Booking.Modify).Methods(http.MethodPut)
	authed.HandleFunc("/bookings/{id}/modifiable", h.Booking.CheckModifiable).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/cancel", h.Booking.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/transactions", h.Transaction.ListByBooking).Methods(http.MethodGet)

	authed.HandleFunc("/transactions", h.Transaction.ListMine).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)
	authed.HandleFunc("/notifications/{id}/trash", h.Notification.Trash).Methods(http.MethodPost)

	authed.HandleFunc("/uploads/payment-proof", h.Media.Upload).Methods(http.MethodPost)

	// Admin routes.
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)

	admin.HandleFunc("/bookings", h.Booking.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/approve", h.Booking.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/decline", h.Booking.Decline).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles", h.Vehicle.Create).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id}", h.Vehicle.Update).Methods(http.MethodPut)

	return r
}
