package events

import (
	"context"

	"drivehub-backend/internal/logger"
)

// Bus is what the lifecycle service sees: a place to hand completed state
// transitions. Emission is fire-and-forget; a sink failure never rolls back
// the booking write that produced the event.
type Bus interface {
	Dispatch(ctx context.Context, ev Event)
}

// Sink delivers an event to one destination (notification rows, email,
// the realtime channel).
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

type dispatcher struct {
	sinks []Sink
}

func NewDispatcher(sinks ...Sink) Bus {
	return &dispatcher{sinks: sinks}
}

func (d *dispatcher) Dispatch(ctx context.Context, ev Event) {
	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, ev); err != nil {
			logger.Error("event delivery failed", "sink", sink.Name(), "event", ev.Type, "booking_id", ev.Booking.ID, "error", err)
			continue
		}
		logger.Debug("event delivered", "sink", sink.Name(), "event", ev.Type, "booking_id", ev.Booking.ID)
	}
}
