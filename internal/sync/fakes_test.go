package sync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// scriptedAPI serves canned responses and records calls.
type scriptedAPI struct {
	mu         sync.Mutex
	notifResp  model.NotificationListResponse
	notifErr   error
	history    []model.Message
	historyErr error
	convResp   []model.Conversation
	convErr    error
	sendResp   model.Message
	sendErr    error

	notifCalls   int
	historyCalls int
	convCalls    int
	sent         []sentCall
}

type sentCall struct {
	to      int64
	content string
}

func (s *scriptedAPI) Notifications(ctx context.Context, page, limit int) (model.NotificationListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifCalls++
	return s.notifResp, s.notifErr
}

func (s *scriptedAPI) History(ctx context.Context, otherUserID int64) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyCalls++
	return append([]model.Message(nil), s.history...), s.historyErr
}

func (s *scriptedAPI) Conversations(ctx context.Context) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convCalls++
	return append([]model.Conversation(nil), s.convResp...), s.convErr
}

func (s *scriptedAPI) Send(ctx context.Context, otherUserID int64, content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return model.Message{}, s.sendErr
	}
	s.sent = append(s.sent, sentCall{to: otherUserID, content: content})
	return s.sendResp, nil
}

func (s *scriptedAPI) setNotifErr(err error) {
	s.mu.Lock()
	s.notifErr = err
	s.mu.Unlock()
}

func (s *scriptedAPI) setConvErr(err error) {
	s.mu.Lock()
	s.convErr = err
	s.mu.Unlock()
}

func (s *scriptedAPI) counts() (notif, history, conv int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifCalls, s.historyCalls, s.convCalls
}

func (s *scriptedAPI) sentCalls() []sentCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentCall(nil), s.sent...)
}

// gatedAPI blocks every call until the test releases it by call number,
// so interleavings of concurrent fetches are deterministic.
type gatedAPI struct {
	mu      sync.Mutex
	calls   int
	entered chan int
	release map[int]chan struct{}
}

func newGatedAPI(expectedCalls int) *gatedAPI {
	g := &gatedAPI{
		entered: make(chan int, expectedCalls),
		release: make(map[int]chan struct{}, expectedCalls),
	}
	for i := 1; i <= expectedCalls; i++ {
		g.release[i] = make(chan struct{})
	}
	return g
}

func (g *gatedAPI) begin() int {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	g.entered <- n
	<-g.release[n]
	return n
}

func (g *gatedAPI) Notifications(ctx context.Context, page, limit int) (model.NotificationListResponse, error) {
	n := g.begin()
	return model.NotificationListResponse{Total: n}, nil
}

func (g *gatedAPI) History(ctx context.Context, otherUserID int64) ([]model.Message, error) {
	n := g.begin()
	return []model.Message{{ID: int64(n), SenderID: otherUserID}}, nil
}

func (g *gatedAPI) Conversations(ctx context.Context) ([]model.Conversation, error) {
	g.begin()
	return nil, nil
}

func (g *gatedAPI) Send(ctx context.Context, otherUserID int64, content string) (model.Message, error) {
	return model.Message{}, nil
}

func (g *gatedAPI) waitEntered(t *testing.T) int {
	t.Helper()
	select {
	case n := <-g.entered:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch to start")
		return 0
	}
}
