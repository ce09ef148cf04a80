package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/utils"
)

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID int64) (string, time.Time, error)
}

// AuthHandler issues tokens for collaborating services. The platform's user
// system performs real login; this endpoint exists for service-to-service
// use and is guarded by the service key.
type AuthHandler struct {
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		logger: logger,
	}
}

type tokenRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// IssueToken mints an access token for the given user id.
// POST /api/v1/service/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "user_id required")
		return
	}

	token, expiresAt, err := h.issuer.GenerateToken(req.UserID)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_at":   expiresAt,
	})
}
