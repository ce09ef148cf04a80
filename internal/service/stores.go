package service

import (
	"context"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// NotificationStore is the persistence surface the notification and
// dispatcher services depend on. Implemented by repository.NotificationRepository.
type NotificationStore interface {
	Create(ctx context.Context, recipientID int64, typ model.NotificationType, title, message string, data model.NotificationData) (model.Notification, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, notificationID, requestingUserID int64) (model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// MessageStore is the persistence surface of the message service.
// Implemented by repository.MessageRepository.
type MessageStore interface {
	Insert(ctx context.Context, senderID, recipientID int64, content string) (model.Message, error)
	FetchBetween(ctx context.Context, userA, userB int64) ([]model.Message, error)
	ListInvolving(ctx context.Context, userID int64) ([]model.Message, error)
}

// MembershipStore resolves broadcast targets at dispatch time.
// Implemented by repository.MembershipRepository.
type MembershipStore interface {
	ProjectMemberIDs(ctx context.Context, projectID int64) ([]int64, error)
	PostParticipantIDs(ctx context.Context, postID int64) ([]int64, error)
}

// UserStore provides read-only profile snapshots for display hydration.
// Implemented by repository.UserRepository.
type UserStore interface {
	GetByID(ctx context.Context, userID int64) (model.UserSnapshot, error)
}
