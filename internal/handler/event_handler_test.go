package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

type fakeEmitter struct {
	intents []model.Intent
}

func (f *fakeEmitter) Emit(ctx context.Context, intent model.Intent) {
	f.intents = append(f.intents, intent)
}

func eventRouter(e *fakeEmitter) *gin.Engine {
	h := NewEventHandler(e, zap.NewNop())
	r := gin.New()
	r.POST("/api/v1/service/events", h.EmitEvent)
	return r
}

func TestEmitEventAccepted(t *testing.T) {
	emitter := &fakeEmitter{}
	r := eventRouter(emitter)

	body := `{
		"event_type": "JOIN_REQUEST",
		"actor_id": 7,
		"target": {"kind": "user", "user_id": 3},
		"title": "New join request",
		"message": "Someone wants to join",
		"data": {"projectId": 42}
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/service/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if len(emitter.intents) != 1 {
		t.Fatalf("got %d intents, want 1", len(emitter.intents))
	}

	intent := emitter.intents[0]
	if intent.EventType != model.TypeJoinRequest || intent.ActorID != 7 {
		t.Errorf("unexpected intent %+v", intent)
	}
	if intent.Target.Kind != model.TargetKindUser || intent.Target.UserID != 3 {
		t.Errorf("unexpected target %+v", intent.Target)
	}
	if intent.Data.ProjectID == nil || *intent.Data.ProjectID != 42 {
		t.Errorf("data.projectId = %v, want 42", intent.Data.ProjectID)
	}
}

func TestEmitEventRejectsMalformedPayload(t *testing.T) {
	emitter := &fakeEmitter{}
	r := eventRouter(emitter)

	for _, body := range []string{``, `{`, `{"actor_id": 7}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/service/events", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if len(emitter.intents) != 0 {
		t.Errorf("malformed payloads must emit nothing, got %d", len(emitter.intents))
	}
}
