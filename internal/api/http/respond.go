package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError translates service errors into the API's status classes:
// missing resources 404, ownership failures 403, bad input 400, state and
// date conflicts 409, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDateConflict),
		errors.Is(err, domain.ErrVehicleUnavailable),
		errors.Is(err, domain.ErrModificationWindowClosed),
		errors.Is(err, domain.ErrModificationLimitReached),
		errors.Is(err, domain.ErrAlreadyTerminal),
		errors.Is(err, domain.ErrAlreadyStarted),
		errors.Is(err, domain.ErrNotModifiable):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
