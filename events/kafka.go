// Package events publishes lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"go-blog-api/config"
	"go-blog-api/logger"
	"go-blog-api/model"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	publishTimeout = 5 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON, keyed by subject id, to one topic
// per subject kind.
type KafkaPublisher struct {
	writer messageWriter
	topics map[model.EventSubject]string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return newKafkaPublisher(newWriter(cfg), cfg)
}

// newWriter builds an async writer: WriteMessages only enqueues, so request
// handlers never wait on the broker. Delivery failures surface in Completion.
func newWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           publishTimeout,
		BatchTimeout:           batchTimeout,
		Async:                  true,
		Completion:             logDelivery,
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err == nil {
		logger.Log.WithField("count", len(messages)).Debug("Events delivered")
		return
	}
	for _, m := range messages {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"topic":      m.Topic,
			"subject_id": string(m.Key),
		}).Warn("Failed to deliver event")
	}
}

func newKafkaPublisher(writer messageWriter, cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topics: map[model.EventSubject]string{
			model.SubjectActor:   cfg.ActorTopic,
			model.SubjectPost:    cfg.PostTopic,
			model.SubjectComment: cfg.PostTopic,
		},
	}
}

// Publish hands the event to the writer. Failures are logged and otherwise
// ignored: the write that produced the event has already succeeded.
func (p *KafkaPublisher) Publish(ctx context.Context, event model.Event) {
	log := logger.Log.WithFields(logrus.Fields{
		"event_type": event.Type,
		"subject":    event.Subject,
		"subject_id": event.SubjectID,
	})

	msg, err := p.message(event)
	if err != nil {
		log.WithError(err).Error("Failed to build event message")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.WithError(err).Warn("Failed to publish event")
		return
	}
	log.Debug("Event queued")
}

func (p *KafkaPublisher) message(event model.Event) (kafka.Message, error) {
	topic, ok := p.topics[event.Subject]
	if !ok || topic == "" {
		return kafka.Message{}, fmt.Errorf("no topic for subject %q", event.Subject)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(event.SubjectID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.Event) {}
