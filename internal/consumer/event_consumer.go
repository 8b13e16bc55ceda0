package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/streadway/amqp"
)

// EventConsumer reads device notification events from RabbitMQ and hands
// them to the listeners one at a time.
type EventConsumer struct {
	conn         *amqp.Connection
	queue        string
	exchangeName string
	routingKey   string
	listeners    *Listeners
	logger       *slog.Logger
}

func NewEventConsumer(conn *amqp.Connection, queue, routingKey string, listeners *Listeners, logger *slog.Logger) *EventConsumer {
	if queue == "" {
		queue = "device.events"
	}
	if routingKey == "" {
		routingKey = "device"
	}
	return &EventConsumer{
		conn:         conn,
		queue:        queue,
		exchangeName: "notifications.device",
		routingKey:   routingKey,
		listeners:    listeners,
		logger:       logger,
	}
}

// Start blocks until ctx is done or the delivery channel closes.
func (c *EventConsumer) Start(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := c.setupQueue(ch); err != nil {
		return fmt.Errorf("queue setup failed: %w", err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("qos configuration failed: %w", err)
	}

	deliveries, err := ch.Consume(
		c.queue,
		"",
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			if err := c.handleDelivery(msg); err != nil {
				c.logger.Error("event delivery failed", slog.Any("error", err))
			}
		}
	}
}

func (c *EventConsumer) setupQueue(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		c.queue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	return ch.QueueBind(
		c.queue,
		c.routingKey,
		c.exchangeName,
		false,
		nil,
	)
}

func (c *EventConsumer) handleDelivery(msg amqp.Delivery) error {
	var envelope models.EventEnvelope
	if err := json.Unmarshal(msg.Body, &envelope); err != nil {
		_ = msg.Reject(false)
		return fmt.Errorf("decode event: %w", err)
	}

	switch {
	case envelope.Type == models.EventReceived && envelope.Notification != nil:
		c.listeners.EmitReceived(*envelope.Notification)
	case envelope.Type == models.EventResponse && envelope.Response != nil:
		c.listeners.EmitResponse(*envelope.Response)
	default:
		_ = msg.Reject(false)
		return fmt.Errorf("unsupported event %q", envelope.Type)
	}

	return msg.Ack(false)
}
