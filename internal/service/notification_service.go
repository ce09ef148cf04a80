package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// NotificationService handles notification read/list operations. The Redis
// client is optional; with no cache every unread count goes to the database.
type NotificationService struct {
	store  NotificationStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store NotificationStore, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// List retrieves one page of the user's notifications, newest first, with
// total and unread counters.
func (s *NotificationService) List(ctx context.Context, userID int64, page, limit int) (model.NotificationListResponse, error) {
	offset := (page - 1) * limit

	notifications, err := s.store.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return model.NotificationListResponse{}, err
	}

	total, err := s.store.CountForUser(ctx, userID)
	if err != nil {
		return model.NotificationListResponse{}, err
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return model.NotificationListResponse{}, err
	}

	return model.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
		Page:          page,
		Limit:         limit,
	}, nil
}

// UnreadCount returns the number of unread notifications for the user,
// read through the cache when one is configured.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	key := s.cacheKey(userID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			if count, convErr := strconv.Atoi(cached); convErr == nil {
				return count, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Unread count cache read failed", zap.Error(err))
		}
	}

	count, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, count, s.ttl).Err(); err != nil {
			s.logger.Warn("Unread count cache write failed", zap.Error(err))
		}
	}

	return count, nil
}

// MarkRead marks one notification as read on behalf of its owner. Not-owned
// and nonexistent ids fail identically. Safe to repeat.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) (model.Notification, error) {
	n, err := s.store.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return model.Notification{}, err
	}

	s.invalidate(ctx, userID)
	return n, nil
}

// MarkAllRead marks every unread notification for the user as read and
// returns how many rows changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	count, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, userID)
	return count, nil
}

// InvalidateUnread drops the cached unread count for a user. The dispatcher
// calls this after fan-out so counts stay fresh across deliveries.
func (s *NotificationService) InvalidateUnread(ctx context.Context, userID int64) {
	s.invalidate(ctx, userID)
}

func (s *NotificationService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey(userID)).Err(); err != nil {
		s.logger.Warn("Unread count cache invalidation failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

func (s *NotificationService) cacheKey(userID int64) string {
	return fmt.Sprintf("notif-unread:%d", userID)
}
