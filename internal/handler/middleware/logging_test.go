//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newLoggedRouter(buf *bytes.Buffer, actor *shared.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(logger, config.LogConfig{TimeZone: "UTC"}))
	r.POST("/api/bookings/:id/accept", func(c *gin.Context) {
		if actor != nil {
			middleware.SetActor(c, *actor)
		}
		c.Next()
	}, func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})
	return r
}

func TestLoggingMiddleware(t *testing.T) {
	bookingID := uuid.New()
	path := "/api/bookings/" + bookingID.String() + "/accept"

	t.Run("generates and echoes a request id", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRawRequest(t, newLoggedRouter(&buf, nil), http.MethodPost, path, nil, nil)

		id := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Contains(t, buf.String(), "request_id="+id)
	})

	t.Run("reuses a well-formed inbound id", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRawRequest(t, newLoggedRouter(&buf, nil), http.MethodPost, path, nil,
			map[string]string{middleware.RequestIDHeader: "rzp-evt_42"})

		httptest.AssertHeaders(t, rec, map[string]string{middleware.RequestIDHeader: "rzp-evt_42"})
	})

	t.Run("replaces an inbound id with unsafe characters", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRawRequest(t, newLoggedRouter(&buf, nil), http.MethodPost, path, nil,
			map[string]string{middleware.RequestIDHeader: "a b\nforged=1"})

		assert.NotEqual(t, "a b\nforged=1", rec.Header().Get(middleware.RequestIDHeader))
		assert.NotContains(t, buf.String(), "forged")
	})

	t.Run("completion line carries actor and booking id", func(t *testing.T) {
		var buf bytes.Buffer
		owner := shared.Actor{UserID: uuid.New(), Role: user.RoleOwner}
		rec := httptest.PerformRawRequest(t, newLoggedRouter(&buf, &owner), http.MethodPost, path, nil, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		out := buf.String()
		assert.Contains(t, out, "booking_id="+bookingID.String())
		assert.Contains(t, out, "user_id="+owner.UserID.String())
		assert.Contains(t, out, "role=owner")
		assert.Contains(t, out, "route=/api/bookings/:id/accept")
		assert.Contains(t, out, "level=INFO msg=\"Request completed\"")
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "x-request-id"},
		MaxAge:        time.Hour,
	}))
	r.GET("/api/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/api/bookings", nil,
		map[string]string{"Origin": "http://localhost:3000"})

	assert.Equal(t, http.StatusOK, rec.Code)
	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Content-Length", "X-Request-Id", "X-Ratelimit-Remaining", "Retry-After"} {
		assert.Contains(t, exposed, h)
	}
	assert.Equal(t, 1, bytes.Count([]byte(exposed), []byte("X-Request-Id")))
}
