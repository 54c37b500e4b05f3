package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/segmentio/kafka-go"
)

// KafkaConfig is the Kafka producer configuration
type KafkaConfig struct {
	Brokers []string `json:"brokers" yaml:"brokers" validate:"required,min=1"`
	Topic   string   `json:"topic" yaml:"topic" validate:"required"`
	// WriteTimeout bounds one publish, defaults to 5s
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by client ID
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewKafkaPublisher returns the Kafka publisher
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
	logger.KV(xlog.INFO, "status", "kafka_producer_created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return newKafkaPublisher(w, cfg), nil
}

func newKafkaPublisher(w messageWriter, cfg KafkaConfig) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: w, topic: cfg.Topic, timeout: timeout}
}

// toMessage returns the Kafka message of the event
func (p *KafkaPublisher) toMessage(ev *OnboardingEvent) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "failed to marshal event")
	}
	return kafka.Message{
		Topic: p.topic,
		Key:   []byte(ev.ClientID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
			{Key: "id", Value: []byte(ev.ID)},
		},
		Time: ev.OccurredAt,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev *OnboardingEvent) error {
	msg, err := p.toMessage(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "failed to publish event to %s", p.topic)
	}
	logger.ContextKV(ctx, xlog.DEBUG, "status", "event_published", "topic", p.topic, "id", ev.ID, "client_id", ev.ClientID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
