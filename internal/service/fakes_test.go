package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// In-memory store fakes shared by the service tests. Each fake enforces the
// same ordering and ownership semantics as the SQL repositories.

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeNotificationStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    []model.Notification
	failFor map[int64]bool // recipient ids whose Create fails
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{failFor: make(map[int64]bool)}
}

func (s *fakeNotificationStore) Create(_ context.Context, recipientID int64, typ model.NotificationType, title, message string, data model.NotificationData) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failFor[recipientID] {
		return model.Notification{}, fmt.Errorf("create notification: %w", apperr.ErrTransientStore)
	}

	s.nextID++
	n := model.Notification{
		ID:          s.nextID,
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data:        data,
		IsRead:      false,
		CreatedAt:   testEpoch.Add(time.Duration(s.nextID) * time.Second),
	}
	s.rows = append(s.rows, n)
	return n, nil
}

func (s *fakeNotificationStore) ListForUser(_ context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := []model.Notification{}
	for _, n := range s.rows {
		if n.RecipientID == userID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})

	if offset >= len(owned) {
		return []model.Notification{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (s *fakeNotificationStore) CountForUser(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.rows {
		if n.RecipientID == userID {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.rows {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, notificationID, requestingUserID int64) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ID == notificationID && s.rows[i].RecipientID == requestingUserID {
			s.rows[i].IsRead = true
			return s.rows[i], nil
		}
	}
	return model.Notification{}, fmt.Errorf("notification %d: %w", notificationID, apperr.ErrNotFound)
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for i := range s.rows {
		if s.rows[i].RecipientID == userID && !s.rows[i].IsRead {
			s.rows[i].IsRead = true
			count++
		}
	}
	return count, nil
}

type fakeMessageStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.Message
}

func (s *fakeMessageStore) Insert(_ context.Context, senderID, recipientID int64, content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	m := model.Message{
		ID:          s.nextID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   testEpoch.Add(time.Duration(s.nextID) * time.Second),
	}
	s.rows = append(s.rows, m)
	return m, nil
}

func (s *fakeMessageStore) FetchBetween(_ context.Context, userA, userB int64) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Message{}
	for _, m := range s.rows {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	sortMessagesAsc(out)
	return out, nil
}

func (s *fakeMessageStore) ListInvolving(_ context.Context, userID int64) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Message{}
	for _, m := range s.rows {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	sortMessagesAsc(out)
	return out, nil
}

func (s *fakeMessageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func sortMessagesAsc(msgs []model.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
}

type fakeMembershipStore struct {
	mu       sync.Mutex
	projects map[int64][]int64
	posts    map[int64][]int64
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{
		projects: make(map[int64][]int64),
		posts:    make(map[int64][]int64),
	}
}

func (s *fakeMembershipStore) ProjectMemberIDs(_ context.Context, projectID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.projects[projectID]...), nil
}

func (s *fakeMembershipStore) PostParticipantIDs(_ context.Context, postID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.posts[postID]...), nil
}

type fakeUserStore struct {
	users map[int64]model.UserSnapshot
}

func (s *fakeUserStore) GetByID(_ context.Context, userID int64) (model.UserSnapshot, error) {
	u, ok := s.users[userID]
	if !ok {
		return model.UserSnapshot{}, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}
	return u, nil
}
