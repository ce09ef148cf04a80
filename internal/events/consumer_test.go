package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// scriptedReader replays a fixed sequence of messages, then reports closed.
type scriptedReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *scriptedReader) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

type recordingDispatcher struct {
	mu      sync.Mutex
	intents []model.Intent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, intent model.Intent) int {
	d.mu.Lock()
	d.intents = append(d.intents, intent)
	d.mu.Unlock()
	return 1
}

func encodeIntent(t *testing.T, intent model.Intent) []byte {
	t.Helper()
	b, err := json.Marshal(intent)
	if err != nil {
		t.Fatalf("marshal intent: %v", err)
	}
	return b
}

func TestConsumerDispatchesDecodedIntents(t *testing.T) {
	intent := model.Intent{
		EventType: model.TypeJoinRequest,
		ActorID:   7,
		Target:    model.TargetUser(3),
		Title:     "New join request",
		Message:   "Someone wants to join",
	}
	reader := &scriptedReader{messages: []kafka.Message{
		{Value: encodeIntent(t, intent)},
	}}
	dispatcher := &recordingDispatcher{}

	c := newConsumerWithReader(reader, dispatcher, zap.NewNop())
	c.Run(context.Background())

	if len(dispatcher.intents) != 1 {
		t.Fatalf("dispatched %d intents, want 1", len(dispatcher.intents))
	}
	got := dispatcher.intents[0]
	if got.EventType != model.TypeJoinRequest || got.Target.UserID != 3 {
		t.Errorf("unexpected intent %+v", got)
	}
}

func TestConsumerSkipsMalformedMessages(t *testing.T) {
	good := model.Intent{
		EventType: model.TypeLike,
		ActorID:   5,
		Target:    model.TargetUser(1),
		Title:     "t",
		Message:   "m",
	}
	reader := &scriptedReader{messages: []kafka.Message{
		{Key: []byte("bad"), Value: []byte("{not json")},
		{Value: encodeIntent(t, good)},
	}}
	dispatcher := &recordingDispatcher{}

	c := newConsumerWithReader(reader, dispatcher, zap.NewNop())
	c.Run(context.Background())

	if len(dispatcher.intents) != 1 {
		t.Fatalf("dispatched %d intents, want 1 (malformed skipped)", len(dispatcher.intents))
	}
	if dispatcher.intents[0].EventType != model.TypeLike {
		t.Errorf("wrong intent survived: %+v", dispatcher.intents[0])
	}
}

func TestConsumerStopsOnCancelledContext(t *testing.T) {
	reader := &scriptedReader{}
	c := newConsumerWithReader(reader, &recordingDispatcher{}, zap.NewNop())

	// The scripted reader returns context.Canceled once drained; Run must
	// return instead of spinning.
	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()
	<-done
}

func TestConsumerCloseClosesReader(t *testing.T) {
	reader := &scriptedReader{}
	c := newConsumerWithReader(reader, &recordingDispatcher{}, zap.NewNop())

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reader.mu.Lock()
	defer reader.mu.Unlock()
	if !reader.closed {
		t.Error("Close must close the underlying reader")
	}
}
