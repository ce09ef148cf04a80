package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// MessageService handles direct messages and the derived conversation list.
type MessageService struct {
	store  MessageStore
	users  UserStore
	logger *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(store MessageStore, users UserStore, logger *zap.Logger) *MessageService {
	return &MessageService{
		store:  store,
		users:  users,
		logger: logger,
	}
}

// Send validates and persists a message from sender to recipient.
// Whitespace-only content and self-addressed messages are rejected before
// any row is written.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID int64, content string) (model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return model.Message{}, fmt.Errorf("empty message content: %w", apperr.ErrInvalidArgument)
	}
	if senderID == recipientID {
		return model.Message{}, fmt.Errorf("cannot message yourself: %w", apperr.ErrInvalidArgument)
	}

	return s.store.Insert(ctx, senderID, recipientID, content)
}

// History returns the full conversation between the caller and another user,
// oldest first. Both participants see the same order.
func (s *MessageService) History(ctx context.Context, callerID, otherUserID int64) ([]model.Message, error) {
	return s.store.FetchBetween(ctx, callerID, otherUserID)
}

// ListInvolving returns every message where the caller is sender or
// recipient, oldest first.
func (s *MessageService) ListInvolving(ctx context.Context, callerID int64) ([]model.Message, error) {
	return s.store.ListInvolving(ctx, callerID)
}

// Conversations derives the caller's inbox: one entry per counterparty,
// carrying the most recent message between them, newest conversation first.
// Grouping is by the unordered user pair, viewed as "the other user's id".
func (s *MessageService) Conversations(ctx context.Context, callerID int64) ([]model.Conversation, error) {
	messages, err := s.store.ListInvolving(ctx, callerID)
	if err != nil {
		return nil, err
	}

	latest := make(map[int64]model.Message)
	for _, m := range messages {
		other := m.SenderID
		if other == callerID {
			other = m.RecipientID
		}
		cur, ok := latest[other]
		if !ok || newerThan(m, cur) {
			latest[other] = m
		}
	}

	conversations := make([]model.Conversation, 0, len(latest))
	for other, last := range latest {
		direction := model.DirectionReceived
		if last.SenderID == callerID {
			direction = model.DirectionSent
		}

		snapshot, err := s.users.GetByID(ctx, other)
		if err != nil {
			// A missing profile should not hide the conversation.
			s.logger.Warn("Failed to hydrate conversation partner",
				zap.Int64("user_id", other),
				zap.Error(err))
			snapshot = model.UserSnapshot{ID: other}
		}

		conversations = append(conversations, model.Conversation{
			OtherUser:   snapshot,
			LastMessage: last,
			Direction:   direction,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return newerThan(conversations[i].LastMessage, conversations[j].LastMessage)
	})

	return conversations, nil
}

// UnreadMessageCount is a placeholder extension point. Per-message read
// state is not tracked, so the count is always zero and must not be
// presented as accurate.
func (s *MessageService) UnreadMessageCount(ctx context.Context, callerID int64) (int, error) {
	return 0, nil
}

// newerThan orders messages by (created_at, id), the conversation total order.
func newerThan(a, b model.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
