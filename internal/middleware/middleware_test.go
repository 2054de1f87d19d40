package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hr-portal/internal/auth"
	"hr-portal/internal/domain"
	"hr-portal/internal/rbac"
	"hr-portal/internal/rbac/infra"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour, []string{"boss@corp.io"})
}

func issue(t *testing.T, tm *auth.TokenManager, id uint, email string) string {
	t.Helper()
	tok, err := tm.IssueAccessToken(id, email)
	require.NoError(t, err)
	return tok.AccessToken
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAdminRouter(t *testing.T, enabled bool) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	tm := newTokenManager()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)

	guard := NewAdminGuard(enabled, tm, rbac.NewService(enforcer, zap.NewNop()))
	r := gin.New()
	r.PUT("/leaves/:id/status", append(guard.Require("leave", "approve"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(ContextRole)})
	})...)
	return r, tm
}

func TestAdminGuard(t *testing.T) {
	t.Run("success admin token", func(t *testing.T) {
		r, tm := newAdminRouter(t, true)
		req := httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, tm, 1, "boss@corp.io"))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"role":"admin"}`, w.Body.String())
	})

	t.Run("success token from cookie", func(t *testing.T) {
		r, tm := newAdminRouter(t, true)
		req := httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: issue(t, tm, 1, "boss@corp.io")})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing token", func(t *testing.T) {
		r, _ := newAdminRouter(t, true)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token not found", decodeError(t, w).Error)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		r, _ := newAdminRouter(t, true)
		req := httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decodeError(t, w).Error)
	})

	t.Run("negative employee forbidden", func(t *testing.T) {
		r, tm := newAdminRouter(t, true)
		req := httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, tm, 2, "jane@corp.io"))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "FORBIDDEN", body.Code)
		assert.Equal(t, map[string]any{"required": "leave:approve"}, body.Details)
	})

	t.Run("disabled guard lets anonymous through", func(t *testing.T) {
		r, _ := newAdminRouter(t, false)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/leaves/1/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	tm := newTokenManager()
	r := gin.New()
	r.GET("/me", OptionalAuth(tm), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserIDValidated))
	})

	t.Run("valid token sets user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, tm, 42, "jane@corp.io"))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer broken")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

type failingRBAC struct{}

func (failingRBAC) Enforce(domain.EnforceRequest) (bool, error) {
	return false, errors.New("policy store unavailable")
}

func TestRBACAuthorize(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc := rbac.NewService(enforcer, zap.NewNop())

	newRouter := func(service RBACService) *gin.Engine {
		r := gin.New()
		r.GET("/timesheets", func(c *gin.Context) {
			c.Set(ContextRole, c.GetHeader("X-Role"))
			c.Next()
		}, RBACAuthorize(service, "timesheet", "read"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("success admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/timesheets", nil)
		req.Header.Set("X-Role", auth.RoleAdmin)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("negative employee forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/timesheets", nil)
		req.Header.Set("X-Role", auth.RoleEmployee)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, map[string]any{"required": "timesheet:read"}, decodeError(t, w).Details)
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/timesheets", nil)
		req.Header.Set("X-Role", auth.RoleAdmin)
		w := httptest.NewRecorder()
		newRouter(failingRBAC{}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tm := newTokenManager()
	r := gin.New()
	r.DELETE("/leaves/:id", AuthMiddleware(tm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserIDValidated)})
	})

	req := httptest.NewRequest(http.MethodDelete, "/leaves/1", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tm, 5, "jane@corp.io"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"5"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/leaves/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/leaves/apply::key-1"

	t.Run("stores first response then replays it", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.POST("/leaves/apply", Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})

		payload, err := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"id":1}`)})
		require.NoError(t, err)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, payload, idempotencyTTL).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/leaves/apply", nil)
			req.Header.Set("Idempotency-Key", "key-1")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusCreated, w.Code)
			assert.JSONEq(t, `{"id":1}`, w.Body.String())
			if i == 1 {
				assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
			}
		}

		assert.Equal(t, 1, calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leaves/apply", Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run")
		})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves/apply", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeError(t, w).Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed responses are not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leaves/apply", Idempotency(rdb), func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave type"})
		})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leaves/apply", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key skips redis", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leaves/apply", Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/apply", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/users/login", RateLimitByIP(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitByUser(t *testing.T) {
	tm := newTokenManager()
	r := gin.New()
	r.Use(OptionalAuth(tm))
	r.POST("/leaves/apply", RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodPost, "/leaves/apply", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	alice := issue(t, tm, 1, "alice@corp.io")
	bob := issue(t, tm, 2, "bob@corp.io")

	assert.Equal(t, http.StatusCreated, send(alice))
	assert.Equal(t, http.StatusTooManyRequests, send(alice))
	assert.Equal(t, http.StatusCreated, send(bob))
	assert.Equal(t, http.StatusCreated, send(""))
	assert.Equal(t, http.StatusCreated, send(""))
}

func TestKeyedRateLimiter_EvictsIdleEntries(t *testing.T) {
	now := time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC)
	limiter := NewKeyedRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 2, limiter.size())

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, limiter.Allow("10.0.0.3"))
	assert.Equal(t, 1, limiter.size())
}

func TestCORS(t *testing.T) {
	t.Run("preflight wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"https://hr.corp.io"}))
		r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://hr.corp.io")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "https://hr.corp.io", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDAndContextLogger(t *testing.T) {
	tm := newTokenManager()
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), OptionalAuth(tm), ContextLogger(zap.New(core)), RequestLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		actor, _ := contextutil.GetActor(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"request_id": contextutil.GetRequestID(c.Request.Context()),
			"user_id":    actor.UserID,
		})
	})

	t.Run("reuses the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "rid-123")
		req.Header.Set("Authorization", "Bearer "+issue(t, tm, 9, "boss@corp.io"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.JSONEq(t, `{"request_id":"rid-123","user_id":9}`, w.Body.String())
		assert.Equal(t, "rid-123", w.Header().Get(RequestIDHeader))

		entries := logs.FilterMessage("request completed").TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "rid-123", entries[0].ContextMap()["request_id"])
		assert.Equal(t, uint64(9), entries[0].ContextMap()["user_id"])
		assert.Equal(t, "admin", entries[0].ContextMap()["role"])
	})

	t.Run("replaces an oversized request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		rid := w.Header().Get(RequestIDHeader)
		assert.Len(t, rid, 36)
		assert.JSONEq(t, `{"request_id":"`+rid+`","user_id":0}`, w.Body.String())
	})
}
