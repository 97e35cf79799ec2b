package guard

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"ead-service/internal/service/actor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func resolveAnonymous(t *testing.T, h *GuardHandler, path string) (string, bool) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/resolve?path="+path, nil)

	h.Resolve(c)

	var body struct {
		Data struct {
			Location  string `json:"location"`
			Navigated bool   `json:"navigated"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Data.Location, body.Data.Navigated
}

func TestResolveNavigatorIsRequestLocal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewGuardHandler(actor.NewGate(nil, zap.NewNop()), time.Second)

	// An anonymous caller off the landing page is steered back to it.
	location, navigated := resolveAnonymous(t, h, "/dashboard")
	if location != "/" || !navigated {
		t.Fatalf("anonymous at /dashboard: got (%q, %v), want (/, true)", location, navigated)
	}

	// A second anonymous caller already on the landing page sees its own
	// location, not the first caller's.
	location, navigated = resolveAnonymous(t, h, "/")
	if location != "/" || navigated {
		t.Fatalf("anonymous at /: got (%q, %v), want (/, false)", location, navigated)
	}
}
