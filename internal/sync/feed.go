package sync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// FeedUpdate is one rendered state of the notification feed. Silent updates
// must not toggle any loading indicator.
type FeedUpdate struct {
	Notifications []model.Notification
	Total         int
	Unread        int
	Err           error
	Silent        bool
}

// NotificationFeed polls the caller's notification list: an immediate
// visible fetch on open, then a silent refresh every interval tick. Close
// cancels the poll goroutine.
type NotificationFeed struct {
	api   API
	limit int
	task  *task

	seq     uint64 // last fetch started
	mu      sync.Mutex
	applied uint64 // last snapshot applied
	latest  FeedUpdate
	updates chan FeedUpdate
}

// OpenNotificationFeed opens the feed view and starts polling.
func OpenNotificationFeed(api API, interval time.Duration, limit int) *NotificationFeed {
	f := &NotificationFeed{
		api:     api,
		limit:   limit,
		task:    newTask(interval),
		updates: make(chan FeedUpdate, 16),
	}
	f.task.start(f.fetch)
	return f
}

// Updates delivers feed states as they are applied. Slow consumers drop
// updates rather than block the poller.
func (f *NotificationFeed) Updates() <-chan FeedUpdate {
	return f.updates
}

// Snapshot returns the last applied feed state.
func (f *NotificationFeed) Snapshot() FeedUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// Refresh triggers an immediate silent refetch.
func (f *NotificationFeed) Refresh() {
	f.task.refresh()
}

// Close stops polling. No updates are delivered after Close returns.
func (f *NotificationFeed) Close() {
	f.task.close()
}

func (f *NotificationFeed) fetch(silent bool) {
	seq := atomic.AddUint64(&f.seq, 1)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	resp, err := f.api.Notifications(ctx, 1, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.send(FeedUpdate{Err: err, Silent: silent})
		return
	}

	// A response from an older fetch than the last applied one is stale;
	// applying it would overwrite fresher data.
	if seq <= f.applied {
		return
	}
	f.applied = seq

	update := FeedUpdate{
		Notifications: resp.Notifications,
		Total:         resp.Total,
		Unread:        resp.Unread,
		Silent:        silent,
	}
	f.latest = update
	f.send(update)
}

func (f *NotificationFeed) send(u FeedUpdate) {
	select {
	case f.updates <- u:
	default:
	}
}
