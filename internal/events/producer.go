package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// KafkaEmitter publishes intents to the intent topic. It implements
// service.Emitter: publishing is best-effort and failures are logged, never
// returned, so a broken broker cannot fail the domain action that emitted.
type KafkaEmitter struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaEmitter creates an emitter writing to the given topic.
func NewKafkaEmitter(brokers []string, topic string, logger *zap.Logger) *KafkaEmitter {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaEmitter{
		writer: writer,
		logger: logger,
	}
}

// Emit JSON-encodes the intent and publishes it keyed by event type.
func (e *KafkaEmitter) Emit(ctx context.Context, intent model.Intent) {
	value, err := json.Marshal(intent)
	if err != nil {
		e.logger.Error("Failed to marshal intent", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", intent.EventType, intent.ActorID)),
		Value: value,
		Time:  time.Now(),
	}

	if err := e.writer.WriteMessages(ctx, msg); err != nil {
		e.logger.Error("Failed to publish intent",
			zap.String("event_type", string(intent.EventType)),
			zap.Error(err))
	}
}

// Close flushes and closes the underlying writer.
func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}
