package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get("X-Request-Id") != "abc-123" || resp.Body.String() != "abc-123" {
		t.Fatalf("expected request id to be echoed, got header=%q body=%q", resp.Header().Get("X-Request-Id"), resp.Body.String())
	}
}

func TestRequestIDGeneratesWhenMissingOrOversized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, incoming := range []string{"", strings.Repeat("x", 200)} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if incoming != "" {
			req.Header.Set("X-Request-Id", incoming)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if _, err := uuid.Parse(resp.Header().Get("X-Request-Id")); err != nil {
			t.Fatalf("expected generated uuid, got %q", resp.Header().Get("X-Request-Id"))
		}
	}
}
