package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/utils"
)

// UserReader provides read-only profile snapshots.
type UserReader interface {
	GetByID(ctx context.Context, userID int64) (model.UserSnapshot, error)
}

// UserHandler serves profile lookups used to hydrate conversation partners.
type UserHandler struct {
	users  UserReader
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserReader, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// GetUser returns a user's display snapshot.
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			utils.SendErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err))
		utils.SendErrorResponse(c, apperr.HTTPStatus(err), "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}
