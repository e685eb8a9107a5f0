package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CartHandler reacts to a cart change. Implementations re-read the cart store.
type CartHandler func(ctx context.Context, data CartUpdatedData)

// Subscriber delivers cart.updated events to a handler
type Subscriber struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	name    string
	log     *zap.Logger
}

// NewSubscriber connects to RabbitMQ. name identifies the listening surface
// and is used as the consumer tag.
func NewSubscriber(url, name string, log *zap.Logger) (*Subscriber, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareExchange(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Subscriber connected to RabbitMQ", zap.String("exchange", exchangeName), zap.String("name", name))

	return &Subscriber{
		conn:    conn,
		channel: ch,
		name:    name,
		log:     log,
	}, nil
}

// Run consumes cart.updated events until ctx is done or the channel closes.
// Each surface gets its own exclusive, auto-deleted queue so every listener
// sees every event.
func (s *Subscriber) Run(ctx context.Context, handle CartHandler) error {
	queue, err := s.channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := s.channel.QueueBind(queue.Name, EventTypeCartUpdated, exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to %s: %w", EventTypeCartUpdated, err)
	}

	msgs, err := s.channel.Consume(
		queue.Name,
		s.name, // consumer tag
		false,  // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			s.handleMessage(ctx, msg, handle)
		}
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, msg amqp.Delivery, handle CartHandler) {
	if msg.RoutingKey != EventTypeCartUpdated {
		s.log.Warn("Unknown event type", zap.String("routing_key", msg.RoutingKey))
		msg.Nack(false, false) // Don't requeue unknown events
		return
	}

	data, err := DecodeCartUpdated(msg.Body)
	if err != nil {
		s.log.Error("Failed to unmarshal cart.updated event", zap.Error(err))
		msg.Nack(false, false)
		return
	}

	handle(ctx, data)
	msg.Ack(false)
}

// DecodeCartUpdated parses a cart.updated message body
func DecodeCartUpdated(body []byte) (CartUpdatedData, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return CartUpdatedData{}, err
	}
	if event.EventType != EventTypeCartUpdated {
		return CartUpdatedData{}, fmt.Errorf("unexpected event type %q", event.EventType)
	}
	return event.Payload, nil
}

// Close closes the subscriber connection
func (s *Subscriber) Close() error {
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			s.log.Error("Failed to close channel", zap.Error(err))
		}
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
