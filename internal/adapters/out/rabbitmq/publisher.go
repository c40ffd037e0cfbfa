// Package rabbitmq implements the outbound notification contract on a
// RabbitMQ topic exchange. Events are serialized as JSON and published with
// persistent delivery; consumers bind by routing key pattern.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectInterval = 10 * time.Second

// Routing keys of the dispatch event stream. Targeted driver notifications
// carry the driver ID as the last key segment.
const (
	keyOrderCreated       = "order.created"
	keyOrderAssigned      = "order.assigned"
	keyOrderStatusChanged = "order.status_changed"
	keyDriverAvailability = "driver.availability_changed"
	keyIdleBroadcast      = "driver.broadcast.order_offer"
)

// ErrConnectionClosed is returned when a publish is attempted while the
// broker connection is down. A reconnect is started in the background; the
// caller treats the publish as failed.
var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

// Publisher implements ports.NotificationPublisher over one AMQP channel.
type Publisher struct {
	url      string
	exchange string
	log      *slog.Logger

	mu           sync.Mutex
	conn         *amqp.Connection
	ch           *amqp.Channel
	reconnecting bool
}

// NewPublisher connects to the broker and declares the topic exchange.
func NewPublisher(url, exchange string, log *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		log:      log,
	}
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	return p, nil
}

var _ ports.NotificationPublisher = (*Publisher)(nil)

// PublishOrderCreated announces a new order.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) error {
	return p.publish(ctx, keyOrderCreated, event)
}

// PublishOrderAssigned announces a driver assignment.
func (p *Publisher) PublishOrderAssigned(ctx context.Context, event ports.OrderAssignedEvent) error {
	return p.publish(ctx, keyOrderAssigned, event)
}

// PublishOrderStatusChanged announces an order status transition.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	return p.publish(ctx, keyOrderStatusChanged, event)
}

// PublishDriverAvailabilityChanged announces a driver availability change.
func (p *Publisher) PublishDriverAvailabilityChanged(ctx context.Context, event ports.DriverAvailabilityChangedEvent) error {
	return p.publish(ctx, keyDriverAvailability, event)
}

// NotifyDriverAssigned targets the assigned driver with their new trip. The
// driver's notification consumer binds "driver.assigned.<driver id>".
func (p *Publisher) NotifyDriverAssigned(ctx context.Context, driverID string, event ports.OrderAssignedEvent) error {
	return p.publish(ctx, "driver.assigned."+driverID, event)
}

// BroadcastToIdleDrivers offers an unmatched order to every idle driver.
func (p *Publisher) BroadcastToIdleDrivers(ctx context.Context, event ports.OrderCreatedEvent) error {
	return p.publish(ctx, keyIdleBroadcast, event)
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

// IsAlive reports whether the connection and channel are open, for health
// checks.
func (p *Publisher) IsAlive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return false
	}
	if p.ch == nil || p.ch.IsClosed() {
		return false
	}
	return true
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	closed := p.conn == nil || p.conn.IsClosed()
	ch := p.ch
	p.mu.Unlock()

	if closed {
		p.log.Error("rabbitmq connection lost, scheduling reconnect", "routing_key", routingKey)
		go p.reconnect()
		return ErrConnectionClosed
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = ch.Confirm(false); err != nil {
		return err
	}
	if err = ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	p.mu.Lock()
	p.conn = conn
	p.ch = ch
	p.mu.Unlock()
	return nil
}

// reconnect retries the broker connection until it comes back. Only one
// reconnect loop runs at a time.
func (p *Publisher) reconnect() {
	p.mu.Lock()
	if p.reconnecting {
		p.mu.Unlock()
		return
	}
	p.reconnecting = true
	p.mu.Unlock()

	t := time.NewTicker(reconnectInterval)
	defer t.Stop()

	for range t.C {
		if err := p.connect(); err != nil {
			p.log.Warn("rabbitmq reconnect failed", "error", err)
			continue
		}

		p.log.Info("rabbitmq reconnected")
		p.mu.Lock()
		p.reconnecting = false
		p.mu.Unlock()
		return
	}
}
