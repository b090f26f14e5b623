package http

import (
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type TransactionHandler struct {
	txSvc service.TransactionService
}

func NewTransactionHandler(txSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

type transactionListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	TotalCount   int32                `json:"total_count,omitempty"`
}

func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	page, pageSize := pagination(r)

	txs, count, err := h.txSvc.ListMine(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: txs, TotalCount: count})
}

func (h *TransactionHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	txs, err := h.txSvc.ListByBooking(r.Context(), bookingID, claims.UserID, claims.Role == domain.UserRoleAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Transactions: txs})
}
