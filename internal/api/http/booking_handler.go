package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrValidation, name)
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return int32(id), nil
}

func parseDate(raw, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be yyyy-mm-dd", domain.ErrValidation, field)
	}
	return t, nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}

type createBookingRequest struct {
	VehicleID         int32  `json:"vehicle_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocation    string `json:"pickup_location"`
	ReturnLocation    string `json:"return_location"`
	ProofOfPaymentURL string `json:"proof_of_payment_url"`
	PaymentMethod     string `json:"payment_method"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.Create(r.Context(), service.CreateBookingInput{
		RenterID:          claims.UserID,
		VehicleID:         req.VehicleID,
		StartDate:         start,
		EndDate:           end,
		PickupLocation:    req.PickupLocation,
		ReturnLocation:    req.ReturnLocation,
		ProofOfPaymentURL: req.ProofOfPaymentURL,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.Get(r.Context(), id, claims.UserID, claims.Role == domain.UserRoleAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings   []domain.Booking `json:"bookings"`
	TotalCount int32            `json:"total_count"`
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	page, pageSize := pagination(r)

	bookings, count, err := h.bookingSvc.ListMine(r.Context(), claims.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, TotalCount: count})
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	bookings, count, err := h.bookingSvc.ListAll(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, TotalCount: count})
}

type modifyBookingRequest struct {
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocation    string `json:"pickup_location"`
	ReturnLocation    string `json:"return_location"`
	ProofOfPaymentURL string `json:"proof_of_payment_url"`
	PaymentMethod     string `json:"payment_method"`
}

func (h *BookingHandler) Modify(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req modifyBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.Modify(r.Context(), id, claims.UserID, service.ModifyBookingInput{
		StartDate:         start,
		EndDate:           end,
		PickupLocation:    req.PickupLocation,
		ReturnLocation:    req.ReturnLocation,
		ProofOfPaymentURL: req.ProofOfPaymentURL,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckModifiable(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.CheckModifiable(r.Context(), id, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

type cancelBookingResponse struct {
	RefundCents int32 `json:"refund_cents"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	refund, err := h.bookingSvc.Cancel(r.Context(), id, claims.UserID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelBookingResponse{RefundCents: refund})
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.Approve(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type declineBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req declineBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrValidation)
		return
	}

	booking, err := h.bookingSvc.Decline(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// Availability lets the client check a candidate range before submitting.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"), "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"), "end")
	if err != nil {
		writeError(w, err)
		return
	}
	if !end.After(start) {
		writeError(w, fmt.Errorf("%w: end must be after start", domain.ErrValidation))
		return
	}

	free, err := h.bookingSvc.IsAvailable(r.Context(), vehicleID, start, end, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Available: free})
}
