package sync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// ThreadUpdate is one rendered state of a message thread. ScrollToLatest is
// set on the first snapshot applied after a successful send.
type ThreadUpdate struct {
	PartnerID      int64
	Messages       []model.Message
	Err            error
	Silent         bool
	ScrollToLatest bool
}

// MessageThread polls the conversation with one partner: a visible fetch on
// open and on every partner change, silent refresh every interval tick, and
// an immediate forced refetch after each successful send.
//
// Sending is optimistic in two phases: the draft is cleared before the POST,
// and restored verbatim if the POST fails. A failed send never fabricates a
// message in the displayed history.
type MessageThread struct {
	api  API
	task *task

	seq uint64

	mu            sync.Mutex
	partnerID     int64
	draft         string
	applied       uint64
	pendingScroll bool
	latest        ThreadUpdate
	updates       chan ThreadUpdate
}

// OpenMessageThread opens the thread view for a partner and starts polling.
func OpenMessageThread(api API, partnerID int64, interval time.Duration) *MessageThread {
	t := &MessageThread{
		api:       api,
		partnerID: partnerID,
		task:      newTask(interval),
		updates:   make(chan ThreadUpdate, 16),
	}
	t.task.start(t.fetch)
	return t
}

// Updates delivers thread states as they are applied.
func (t *MessageThread) Updates() <-chan ThreadUpdate {
	return t.updates
}

// Snapshot returns the last applied thread state.
func (t *MessageThread) Snapshot() ThreadUpdate {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

// SetPartner switches the view to a different conversation partner and
// refetches visibly. In-flight responses for the old partner are discarded
// by the sequence guard.
func (t *MessageThread) SetPartner(partnerID int64) {
	t.mu.Lock()
	t.partnerID = partnerID
	t.applied = atomic.LoadUint64(&t.seq)
	t.mu.Unlock()

	go t.fetch(false)
}

// SetDraft stores the user's in-progress message text.
func (t *MessageThread) SetDraft(text string) {
	t.mu.Lock()
	t.draft = text
	t.mu.Unlock()
}

// Draft returns the current draft text.
func (t *MessageThread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// Send submits the current draft. The draft is cleared immediately; on
// failure it is restored and the error returned, with no phantom message in
// history. On success the thread refetches at once instead of waiting for
// the next tick, and the next snapshot carries ScrollToLatest.
func (t *MessageThread) Send(ctx context.Context) (model.Message, error) {
	t.mu.Lock()
	draft := t.draft
	partnerID := t.partnerID
	t.draft = ""
	t.mu.Unlock()

	msg, err := t.api.Send(ctx, partnerID, draft)
	if err != nil {
		t.mu.Lock()
		t.draft = draft
		t.mu.Unlock()
		return model.Message{}, err
	}

	t.mu.Lock()
	t.pendingScroll = true
	t.mu.Unlock()
	t.task.refresh()

	return msg, nil
}

// Refresh triggers an immediate silent refetch.
func (t *MessageThread) Refresh() {
	t.task.refresh()
}

// Close stops polling.
func (t *MessageThread) Close() {
	t.task.close()
}

func (t *MessageThread) fetch(silent bool) {
	seq := atomic.AddUint64(&t.seq, 1)

	t.mu.Lock()
	partnerID := t.partnerID
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	messages, err := t.api.History(ctx, partnerID)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.send(ThreadUpdate{PartnerID: partnerID, Err: err, Silent: silent})
		return
	}

	if seq <= t.applied {
		return
	}
	// The partner may have changed while this fetch was in flight.
	if partnerID != t.partnerID {
		return
	}
	t.applied = seq

	update := ThreadUpdate{
		PartnerID:      partnerID,
		Messages:       messages,
		Silent:         silent,
		ScrollToLatest: t.pendingScroll,
	}
	t.pendingScroll = false
	t.latest = update
	t.send(update)
}

func (t *MessageThread) send(u ThreadUpdate) {
	select {
	case t.updates <- u:
	default:
	}
}
