package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

const (
	TopicConnectionEvents   = "colleagues.connection.events"
	TopicSubscriptionEvents = "colleagues.subscription.events"
)

const (
	ConnectionRequested = "connection.requested"
	ConnectionAccepted  = "connection.accepted"
	ConnectionDeclined  = "connection.declined"

	SubscriptionActivated = "subscription.activated"
	SubscriptionExpired   = "subscription.expired"
)

type ConnectionEventPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	FromUser   int64     `json:"from_user"`
	ToUser     int64     `json:"to_user"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SubscriptionEventPayload struct {
	EventID    string     `json:"event_id"`
	EventType  string     `json:"event_type"`
	UserID     int64      `json:"user_id"`
	Until      *time.Time `json:"until,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Publisher is best-effort: callers treat a lost event as a log line, never
// as a failed user action.
type Publisher interface {
	PublishConnectionEvent(ctx context.Context, eventType string, fromUser, toUser int64)
	PublishSubscriptionEvent(ctx context.Context, eventType string, userID int64, until *time.Time)
}

type KafkaProducerClient struct {
	connectionWriter   *kafka.Writer
	subscriptionWriter *kafka.Writer
	logger             logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	connectionWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicConnectionEvents,
		Balancer: &kafka.LeastBytes{},
	}

	subscriptionWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSubscriptionEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialized Kafka producers.")

	return &KafkaProducerClient{
		connectionWriter:   connectionWriter,
		subscriptionWriter: subscriptionWriter,
		logger:             log,
	}, nil
}

func (c *KafkaProducerClient) PublishConnectionEvent(ctx context.Context, eventType string, fromUser, toUser int64) {
	payload := ConnectionEventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		FromUser:   fromUser,
		ToUser:     toUser,
		OccurredAt: time.Now().UTC(),
	}
	c.publish(ctx, c.connectionWriter, strconv.FormatInt(fromUser, 10), payload)
}

func (c *KafkaProducerClient) PublishSubscriptionEvent(ctx context.Context, eventType string, userID int64, until *time.Time) {
	payload := SubscriptionEventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		UserID:     userID,
		Until:      until,
		OccurredAt: time.Now().UTC(),
	}
	c.publish(ctx, c.subscriptionWriter, strconv.FormatInt(userID, 10), payload)
}

func (c *KafkaProducerClient) publish(ctx context.Context, w *kafka.Writer, key string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("Failed to marshal event payload", err, zap.String("topic", w.Topic))
		return
	}

	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		c.logger.Error("Failed to publish event", err, zap.String("topic", w.Topic))
	}
}

func (c *KafkaProducerClient) Close() {
	if c.connectionWriter != nil {
		c.connectionWriter.Close()
	}
	if c.subscriptionWriter != nil {
		c.subscriptionWriter.Close()
	}
	c.logger.Info("Closed Kafka producers.")
}
