package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyEmail is the routing key every email message is published with
const RoutingKeyEmail = "notify.email"

// RabbitConfig describes the broker topology shared by publisher and consumer
type RabbitConfig struct {
	URL      string
	Exchange string
	Queue    string
	DLX      string // optional dead letter exchange for undeliverable messages
	Prefetch int
}

// RabbitQueue publishes messages to a topic exchange for cmd/notifier
type RabbitQueue struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp channels are not safe for concurrent publishes
	ch       *amqp.Channel
	exchange string
}

// NewRabbitQueue dials the broker and declares the exchange
func NewRabbitQueue(cfg RabbitConfig) (*RabbitQueue, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitQueue{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// Enqueue publishes msg as persistent JSON
func (q *RabbitQueue) Enqueue(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ch.PublishWithContext(ctx, q.exchange, RoutingKeyEmail, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Close closes the channel and connection
func (q *RabbitQueue) Close() error {
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// Consumer reads email messages from the broker and hands them to a Sender
type Consumer struct {
	cfg    RabbitConfig
	sender Sender

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer creates a consumer; call Connect before Run
func NewConsumer(cfg RabbitConfig, sender Sender) *Consumer {
	return &Consumer{cfg: cfg, sender: sender}
}

// Connect declares the exchange, queue and optional dead letter topology
func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	fail := func(format string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf(format, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange failed: %w", err)
	}

	args := amqp.Table{}
	if c.cfg.DLX != "" {
		args["x-dead-letter-exchange"] = c.cfg.DLX
		if err := ch.ExchangeDeclare(c.cfg.DLX, "topic", true, false, false, false, nil); err != nil {
			return fail("declare dlx failed: %w", err)
		}
		dlq := c.cfg.Queue + ".dead"
		if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
			return fail("declare dlq failed: %w", err)
		}
		if err := ch.QueueBind(dlq, "#", c.cfg.DLX, false, nil); err != nil {
			return fail("bind dlq failed: %w", err)
		}
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		return fail("declare queue failed: %w", err)
	}
	if err := ch.QueueBind(q.Name, RoutingKeyEmail, c.cfg.Exchange, false, nil); err != nil {
		return fail("bind queue failed: %w", err)
	}

	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fail("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

// Close closes the channel and connection
func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run consumes until ctx is cancelled or the delivery channel closes
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

// Delivery is the subset of amqp.Delivery the consumer acknowledges through
type Delivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	c.process(ctx, d.Body, d.Redelivered, &d)
}

// process decodes and sends one message. Malformed bodies are dropped to the
// dead letter exchange; a failed send is retried once, then dead-lettered.
func (c *Consumer) process(ctx context.Context, body []byte, redelivered bool, d Delivery) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("❌ [notifier] malformed message dropped: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := c.sender.Send(ctx, msg); err != nil {
		requeue := !redelivered
		log.Printf("❌ [notifier] send %q failed (requeue=%v): %v", msg.Subject, requeue, err)
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}
