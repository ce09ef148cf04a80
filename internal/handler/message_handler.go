package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/middleware"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/utils"
)

// Messenger is the message service surface the handler depends on.
type Messenger interface {
	Send(ctx context.Context, senderID, recipientID int64, content string) (model.Message, error)
	History(ctx context.Context, callerID, otherUserID int64) ([]model.Message, error)
	ListInvolving(ctx context.Context, callerID int64) ([]model.Message, error)
	Conversations(ctx context.Context, callerID int64) ([]model.Conversation, error)
}

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messages Messenger
	logger   *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages Messenger, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		logger:   logger,
	}
}

// ListMessages returns every message involving the caller.
// GET /api/v1/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.messages.ListInvolving(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list messages", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetHistory returns the ordered conversation between the caller and another
// user.
// GET /api/v1/messages/:userId
func (h *MessageHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.messages.History(c.Request.Context(), userID, otherID)
	if err != nil {
		h.logger.Error("Failed to get message history", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage creates a message from the caller to another user.
// POST /api/v1/messages/:userId
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req model.MessageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Message content required")
		return
	}

	message, err := h.messages.Send(c.Request.Context(), userID, otherID, req.Content)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
			h.logger.Error("Failed to send message", zap.Error(err))
			utils.SendErrorResponse(c, status, "Failed to send message")
			return
		}
		utils.SendErrorResponse(c, status, err.Error())
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetConversations returns the caller's derived conversation list, most
// recent first.
// GET /api/v1/conversations
func (h *MessageHandler) GetConversations(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conversations, err := h.messages.Conversations(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get conversations", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get conversations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}
