package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// IntentDispatcher consumes decoded intents. Implemented by
// service.Dispatcher.
type IntentDispatcher interface {
	Dispatch(ctx context.Context, intent model.Intent) int
}

// messageReader is the slice of kafka.Reader the consumer needs; narrowed
// for testability.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads intents off the intent topic and hands them to the
// dispatcher. Malformed payloads are logged and skipped; the loop only stops
// when its context is cancelled or the reader is closed.
type Consumer struct {
	reader     messageReader
	dispatcher IntentDispatcher
	logger     *zap.Logger
}

// NewConsumer creates a consumer reading from the intent topic as part of
// the given consumer group.
func NewConsumer(brokers []string, topic, groupID string, dispatcher IntentDispatcher, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})

	return &Consumer{
		reader:     reader,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// newConsumerWithReader is used by tests to inject a fake reader.
func newConsumerWithReader(reader messageReader, dispatcher IntentDispatcher, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader:     reader,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run consumes until ctx is cancelled. Intended to run in its own goroutine.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			c.logger.Error("Failed to read intent message", zap.Error(err))
			return
		}

		var intent model.Intent
		if err := json.Unmarshal(msg.Value, &intent); err != nil {
			c.logger.Error("Failed to decode intent message",
				zap.ByteString("key", msg.Key),
				zap.Error(err))
			continue
		}

		c.dispatcher.Dispatch(ctx, intent)
	}
}

// Close closes the underlying reader, unblocking Run.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
