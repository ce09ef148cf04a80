package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeNotificationStore, *fakeMembershipStore) {
	t.Helper()
	store := newFakeNotificationStore()
	members := newFakeMembershipStore()
	d := NewDispatcher(store, members, nil, zap.NewNop())
	return d, store, members
}

func TestDispatchSingleUserTarget(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	projectID := int64(42)
	delivered := d.Dispatch(context.Background(), model.Intent{
		EventType: model.TypeJoinRequest,
		ActorID:   7,
		Target:    model.TargetUser(3),
		Title:     "New join request",
		Message:   "Someone wants to join your project",
		Data:      model.NotificationData{ProjectID: &projectID},
	})

	if delivered != 1 {
		t.Fatalf("delivered = %d, want 1", delivered)
	}
	if len(store.rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(store.rows))
	}

	n := store.rows[0]
	if n.RecipientID != 3 {
		t.Errorf("recipient = %d, want 3", n.RecipientID)
	}
	if n.IsRead {
		t.Error("new notification must be unread")
	}
	if n.Type != model.TypeJoinRequest {
		t.Errorf("type = %s, want JOIN_REQUEST", n.Type)
	}
	if n.Data.ProjectID == nil || *n.Data.ProjectID != 42 {
		t.Errorf("data.projectId = %v, want 42", n.Data.ProjectID)
	}
}

func TestDispatchProjectMembersExcludesActor(t *testing.T) {
	d, store, members := newTestDispatcher(t)
	members.projects[10] = []int64{1, 2, 3}

	delivered := d.Dispatch(context.Background(), model.Intent{
		EventType: model.TypeComment,
		ActorID:   2,
		Target:    model.TargetProjectMembers(10),
		Title:     "New comment",
		Message:   "A project member commented",
	})

	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	for _, n := range store.rows {
		if n.RecipientID == 2 {
			t.Error("actor must not receive their own broadcast")
		}
	}
}

func TestDispatchReadsMembershipAtDispatchTime(t *testing.T) {
	d, store, members := newTestDispatcher(t)
	members.projects[10] = []int64{1, 2}

	intent := model.Intent{
		EventType: model.TypeComment,
		ActorID:   99,
		Target:    model.TargetProjectMembers(10),
		Title:     "t",
		Message:   "m",
	}
	d.Dispatch(context.Background(), intent)

	// A membership change after dispatch must not affect the records
	// already created.
	members.mu.Lock()
	members.projects[10] = []int64{1, 2, 3, 4}
	members.mu.Unlock()

	if len(store.rows) != 2 {
		t.Fatalf("got %d rows after membership change, want 2", len(store.rows))
	}
}

func TestDispatchContinuesPastFailingRecipient(t *testing.T) {
	d, store, members := newTestDispatcher(t)
	members.projects[10] = []int64{1, 2, 3}
	store.failFor[2] = true

	delivered := d.Dispatch(context.Background(), model.Intent{
		EventType: model.TypeComment,
		ActorID:   99,
		Target:    model.TargetProjectMembers(10),
		Title:     "t",
		Message:   "m",
	})

	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}

	got := map[int64]bool{}
	for _, n := range store.rows {
		got[n.RecipientID] = true
	}
	if !got[1] || !got[3] {
		t.Errorf("recipients 1 and 3 must still be delivered, got %v", got)
	}
	if got[2] {
		t.Error("failed recipient must have no row")
	}
}

func TestDispatchNoDeduplication(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	intent := model.Intent{
		EventType: model.TypeLike,
		ActorID:   5,
		Target:    model.TargetUser(3),
		Title:     "t",
		Message:   "m",
	}

	// Each domain event produces exactly one record per recipient, even
	// for rapid identical intents.
	d.Dispatch(context.Background(), intent)
	d.Dispatch(context.Background(), intent)

	if len(store.rows) != 2 {
		t.Fatalf("got %d rows, want 2 (no dedup)", len(store.rows))
	}
}

func TestDispatchUnknownTargetKind(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	delivered := d.Dispatch(context.Background(), model.Intent{
		EventType: model.TypeLike,
		ActorID:   5,
		Target:    model.Target{Kind: "mystery"},
		Title:     "t",
		Message:   "m",
	})

	if delivered != 0 || len(store.rows) != 0 {
		t.Fatalf("unknown target must deliver nothing, got %d delivered %d rows", delivered, len(store.rows))
	}
}

func TestEmitNeverPanicsOrReports(t *testing.T) {
	d, _, members := newTestDispatcher(t)
	members.projects[10] = nil

	// Emit has no return value: a failed resolution must be invisible to
	// the domain caller.
	d.Emit(context.Background(), model.Intent{
		EventType: model.TypeComment,
		ActorID:   1,
		Target:    model.TargetProjectMembers(10),
		Title:     "t",
		Message:   "m",
	})
}
