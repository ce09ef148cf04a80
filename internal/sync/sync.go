// Package sync implements the client-side polling contract shared by the
// notification and messaging views: interval-based silent refresh, forced
// refetch after a send, optimistic drafts with rollback, and guaranteed
// cancellation of the polling goroutine when a view closes.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// API is the server surface the views poll. Implemented by client.APIClient.
type API interface {
	Notifications(ctx context.Context, page, limit int) (model.NotificationListResponse, error)
	History(ctx context.Context, otherUserID int64) ([]model.Message, error)
	Conversations(ctx context.Context) ([]model.Conversation, error)
	Send(ctx context.Context, otherUserID int64, content string) (model.Message, error)
}

// fetchTimeout bounds a single poll round trip.
const fetchTimeout = 10 * time.Second

// task owns the polling goroutine bound to one view's lifetime. The view
// session that opens it must call close; after close returns, no further
// fetches run.
type task struct {
	interval  time.Duration
	refreshCh chan struct{}
	stopCh    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newTask(interval time.Duration) *task {
	return &task{
		interval:  interval,
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// start runs the poll loop: one immediate visible fetch, then silent
// refreshes on every tick or forced-refresh trigger.
func (t *task) start(fetch func(silent bool)) {
	go func() {
		defer close(t.done)

		fetch(false)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopCh:
				return
			case <-ticker.C:
				fetch(true)
			case <-t.refreshCh:
				fetch(true)
			}
		}
	}()
}

// refresh triggers an immediate silent fetch without blocking.
func (t *task) refresh() {
	select {
	case t.refreshCh <- struct{}{}:
	default:
	}
}

// close stops the loop and waits for the goroutine to exit.
func (t *task) close() {
	t.closeOnce.Do(func() {
		close(t.stopCh)
	})
	<-t.done
}
