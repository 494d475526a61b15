package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// OrderCreatedEvent is published to the staff-facing topic when a
// checkout commits.
type OrderCreatedEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OrderType   string    `json:"order_type"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// LowStockEvent is published when a sale drops an item to or below its
// low-stock threshold.
type LowStockEvent struct {
	EventType string    `json:"event_type"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher abstracts the event bus so checkout can be tested
// without a broker.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error
	PublishLowStock(ctx context.Context, evt LowStockEvent) error
	Close() error
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	w := &kafkago.Writer{
		Addr:     kafkago.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafkago.LeastBytes{},
	}
	return &Producer{writer: w}
}

// PublishOrderCreated emits an order.created event keyed by order id.
func (p *Producer) PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error {
	return p.publish(ctx, evt.OrderID, evt)
}

// PublishLowStock emits a stock.low event keyed by item id.
func (p *Producer) PublishLowStock(ctx context.Context, evt LowStockEvent) error {
	return p.publish(ctx, evt.ItemID, evt)
}

func (p *Producer) publish(ctx context.Context, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if key == "" {
		key = uuid.NewString()
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
