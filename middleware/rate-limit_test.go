package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitFactory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/limited", rateLimitFactory(2, 60, "TEST"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	status := func() int {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		engine.ServeHTTP(recorder, req)
		return recorder.Code
	}

	if got := status(); got != http.StatusOK {
		t.Fatalf("first request = %d, want 200", got)
	}
	if got := status(); got != http.StatusOK {
		t.Fatalf("second request = %d, want 200", got)
	}
	if got := status(); got != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", got)
	}
}

func TestRateLimitFactoryDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	// A zero request count disables the limiter entirely.
	engine.GET("/open", rateLimitFactory(0, 60, "OPEN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		engine.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, recorder.Code)
		}
	}
}

func TestRateLimitResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/tight", rateLimitFactory(1, 60, "TIGHT"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/tight", nil))

	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/tight", nil))

	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", second.Code)
	}
	if !strings.Contains(second.Body.String(), `"success":false`) {
		t.Errorf("body = %s, want the error envelope", second.Body.String())
	}
	if !strings.Contains(second.Body.String(), "Too many requests") {
		t.Errorf("body = %s, want a rate limit message", second.Body.String())
	}
}
