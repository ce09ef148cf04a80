package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/service"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/utils"
)

// EventHandler accepts notification intents from the platform's domain
// services. Guarded by service-key auth, not user auth.
type EventHandler struct {
	emitter service.Emitter
	logger  *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(emitter service.Emitter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		emitter: emitter,
		logger:  logger,
	}
}

// EmitEvent accepts an intent for delivery. Always 202 on well-formed input:
// delivery is best-effort and the producing domain action must not depend on
// its outcome.
// POST /api/v1/service/events
func (h *EventHandler) EmitEvent(c *gin.Context) {
	var intent model.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid intent payload")
		return
	}

	h.emitter.Emit(c.Request.Context(), intent)

	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
