package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RealtimePublisher pushes booking events onto a topic exchange so the
// client and admin apps can subscribe to live updates. Routing keys are
// user.<renter_id> and admin; delivery is at-most-once with no
// acknowledgement from consumers.
type RealtimePublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewRealtimePublisher(url, exchange string) (*RealtimePublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &RealtimePublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RealtimePublisher) Name() string { return "realtime" }

func (p *RealtimePublisher) Deliver(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	keys := []string{
		fmt.Sprintf("user.%d", ev.Booking.RenterID),
		"admin",
	}
	for _, key := range keys {
		err := p.channel.PublishWithContext(ctx,
			p.exchange,
			key,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish %s: %w", key, err)
		}
	}
	return nil
}

func (p *RealtimePublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
