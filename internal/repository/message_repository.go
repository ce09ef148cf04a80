package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new message and returns it with the server-assigned id
// and timestamp. Content validation happens in the service layer.
func (r *MessageRepository) Insert(ctx context.Context, senderID, recipientID int64, content string) (model.Message, error) {
	query := `INSERT INTO messages (sender_id, recipient_id, content)
	          VALUES ($1, $2, $3)
	          RETURNING id, sender_id, recipient_id, content, created_at`

	var m model.Message
	err := r.db.GetContext(ctx, &m, query, senderID, recipientID, content)
	if err != nil {
		r.logger.Error("Failed to insert message",
			zap.Int64("sender_id", senderID),
			zap.Int64("recipient_id", recipientID),
			zap.Error(err))
		return model.Message{}, fmt.Errorf("insert message: %w", apperr.ErrTransientStore)
	}

	return m, nil
}

// FetchBetween returns every message exchanged between two users in either
// direction, oldest first. (created_at, id) ascending is the conversation's
// total order, identical for both participants.
func (r *MessageRepository) FetchBetween(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	query := `SELECT id, sender_id, recipient_id, content, created_at
	          FROM messages
	          WHERE (sender_id = $1 AND recipient_id = $2)
	             OR (sender_id = $2 AND recipient_id = $1)
	          ORDER BY created_at ASC, id ASC`

	messages := []model.Message{}
	err := r.db.SelectContext(ctx, &messages, query, userA, userB)
	if err != nil {
		r.logger.Error("Failed to fetch messages between users",
			zap.Int64("user_a", userA),
			zap.Int64("user_b", userB),
			zap.Error(err))
		return nil, fmt.Errorf("fetch messages: %w", apperr.ErrTransientStore)
	}

	return messages, nil
}

// ListInvolving returns every message where the user is sender or recipient,
// oldest first. Conversation grouping is derived from this list.
func (r *MessageRepository) ListInvolving(ctx context.Context, userID int64) ([]model.Message, error) {
	query := `SELECT id, sender_id, recipient_id, content, created_at
	          FROM messages
	          WHERE sender_id = $1 OR recipient_id = $1
	          ORDER BY created_at ASC, id ASC`

	messages := []model.Message{}
	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		r.logger.Error("Failed to list messages for user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list messages: %w", apperr.ErrTransientStore)
	}

	return messages, nil
}
