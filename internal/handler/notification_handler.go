package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/middleware"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/utils"
)

// NotificationReader lists notifications and mutates read state on behalf of
// the authenticated caller.
type NotificationReader interface {
	List(ctx context.Context, userID int64, page, limit int) (model.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// NotificationOpener performs the read-state transition with navigation
// resolution for a single notification.
type NotificationOpener interface {
	Open(ctx context.Context, notificationID, userID int64) (model.Notification, model.NavigationTarget, error)
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications NotificationReader
	readState     NotificationOpener
	logger        *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications NotificationReader, readState NotificationOpener, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		readState:     readState,
		logger:        logger,
	}
}

// GetNotifications handles retrieving the caller's notifications
// GET /api/v1/notifications?page&limit
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, err := utils.ParsePaginationParams(c, 20, 100)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	resp, err := h.notifications.List(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		h.logger.Error("Failed to get notifications", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get notifications")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUnreadCount handles retrieving the caller's unread notification count
// GET /api/v1/notifications/count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get unread notification count", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get notification count")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationAsRead marks one notification read and resolves where the
// client should navigate.
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	notification, nav, err := h.readState.Open(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			utils.SendErrorResponse(c, http.StatusNotFound, "Notification not found")
			return
		}
		h.logger.Error("Failed to mark notification as read", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": notification,
		"navigation":   nav,
	})
}

// MarkAllAsRead handles marking all of the caller's notifications as read
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := h.notifications.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to mark all notifications as read", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_count": count})
}
