package domain

import "errors"

// Booking workflow errors. Services return these (possibly wrapped); the
// HTTP layer translates them to status codes with errors.Is.
var (
	ErrNotFound                 = errors.New("resource not found")
	ErrForbidden                = errors.New("requester does not own this resource")
	ErrValidation               = errors.New("invalid request")
	ErrDateConflict             = errors.New("dates conflict with another booking for this vehicle")
	ErrVehicleUnavailable       = errors.New("vehicle is not available for booking")
	ErrModificationWindowClosed = errors.New("booking can no longer be modified: rental has started")
	ErrModificationLimitReached = errors.New("booking has reached its modification limit")
	ErrAlreadyTerminal          = errors.New("booking is already in a terminal state")
	ErrAlreadyStarted           = errors.New("booking is already ongoing")
	ErrNotModifiable            = errors.New("booking is not modifiable in its current state")
)
