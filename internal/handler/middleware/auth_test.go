//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/tests/common/authtest"
	"vehicle-rental/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "middleware-test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(testSecret, time.Hour)))

	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID.String(), "role": string(actor.Role)})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/unguarded-role", auth.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter()
	tokens := authtest.NewJWTHelper(config.JWTConfig{Secret: testSecret, Duration: "1h"})
	userID := uuid.New()

	t.Run("valid token sets the actor", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, tokens.GenerateToken(t, userID, user.RoleOwner))

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "owner", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "someone-else", Duration: "1h"})
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, other.GenerateToken(t, userID, user.RoleOwner))
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := authtest.NewJWTHelper(config.JWTConfig{Secret: testSecret, Duration: "1h"}).CreateExpiredToken(t, userID, user.RoleRenter)
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, expired)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("non-bearer scheme is ignored", func(t *testing.T) {
		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/me", nil,
			map[string]string{"Authorization": "Basic " + tokens.GenerateToken(t, userID, user.RoleOwner)})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter()
	tokens := authtest.NewJWTHelper(config.JWTConfig{Secret: testSecret, Duration: "1h"})

	tests := []struct {
		name       string
		role       user.Role
		expectCode int
	}{
		{name: "admin passes", role: user.RoleAdmin, expectCode: http.StatusNoContent},
		{name: "owner is forbidden", role: user.RoleOwner, expectCode: http.StatusForbidden},
		{name: "renter is forbidden", role: user.RoleRenter, expectCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, tokens.GenerateToken(t, uuid.New(), tt.role))
			assert.Equal(t, tt.expectCode, rec.Code)
		})
	}

	t.Run("without RequireAuth in front", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/unguarded-role", nil, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
