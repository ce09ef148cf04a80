package utils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit values", "page=3&limit=50", 3, 50, false},
		{"page below one clamps", "page=0", 1, 20, false},
		{"negative page clamps", "page=-5", 1, 20, false},
		{"limit below one uses default", "limit=0", 1, 20, false},
		{"limit above max clamps", "limit=5000", 1, 100, false},
		{"non-numeric page errors", "page=abc", 0, 0, true},
		{"non-numeric limit errors", "limit=xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := paginationContext(t, tt.query)
			params, err := ParsePaginationParams(c, 20, 100)

			if tt.wantErr {
				if !errors.Is(err, apperr.ErrInvalidArgument) {
					t.Fatalf("error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if params.Page != tt.wantPage || params.Limit != tt.wantLimit {
				t.Errorf("params = (%d,%d), want (%d,%d)", params.Page, params.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
