package sync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// InboxUpdate is one rendered state of the conversation list.
type InboxUpdate struct {
	Conversations []model.Conversation
	Err           error
	Silent        bool
}

// ConversationInbox polls the derived conversation list. It refreshes at the
// feed interval: an inbox that only loads on mount goes stale the moment a
// new message arrives, so it follows the same polling policy as the
// notification feed rather than fetching once.
type ConversationInbox struct {
	api  API
	task *task

	seq     uint64
	mu      sync.Mutex
	applied uint64
	latest  InboxUpdate
	updates chan InboxUpdate
}

// OpenConversationInbox opens the inbox view and starts polling.
func OpenConversationInbox(api API, interval time.Duration) *ConversationInbox {
	i := &ConversationInbox{
		api:     api,
		task:    newTask(interval),
		updates: make(chan InboxUpdate, 16),
	}
	i.task.start(i.fetch)
	return i
}

// Updates delivers inbox states as they are applied.
func (i *ConversationInbox) Updates() <-chan InboxUpdate {
	return i.updates
}

// Snapshot returns the last applied inbox state.
func (i *ConversationInbox) Snapshot() InboxUpdate {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.latest
}

// Refresh triggers an immediate silent refetch.
func (i *ConversationInbox) Refresh() {
	i.task.refresh()
}

// Close stops polling.
func (i *ConversationInbox) Close() {
	i.task.close()
}

func (i *ConversationInbox) fetch(silent bool) {
	seq := atomic.AddUint64(&i.seq, 1)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	conversations, err := i.api.Conversations(ctx)

	i.mu.Lock()
	defer i.mu.Unlock()

	if err != nil {
		i.send(InboxUpdate{Err: err, Silent: silent})
		return
	}

	if seq <= i.applied {
		return
	}
	i.applied = seq

	update := InboxUpdate{
		Conversations: conversations,
		Silent:        silent,
	}
	i.latest = update
	i.send(update)
}

func (i *ConversationInbox) send(u InboxUpdate) {
	select {
	case i.updates <- u:
	default:
	}
}
