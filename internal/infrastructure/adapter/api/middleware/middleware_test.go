package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/session"
	timeadapter "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.OPTIONS("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminToken(t *testing.T) {
	log := logger.NewNoopLogger()

	testCases := []struct {
		name     string
		required bool
		token    string
		header   string
		status   int
	}{
		{"disabled", false, "", "", http.StatusOK},
		{"valid", true, "s3cret", "s3cret", http.StatusOK},
		{"missing", true, "s3cret", "", http.StatusForbidden},
		{"wrong", true, "s3cret", "guess", http.StatusForbidden},
		{"unconfigured token refuses", true, "", "", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(AdminToken(tc.required, tc.token, log))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set(AdminTokenHeader, tc.header)
			}
			assert.Equal(t, tc.status, serve(r, req).Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	rl := NewRateLimiter(60, 2, clock, logger.NewNoopLogger())

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "clients have separate buckets")

	clock.Advance(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refills per second at 60/min")
	assert.False(t, rl.Allow("10.0.0.1"))

	clock.Advance(idleLimiterTTL + time.Second)
	rl.Allow("10.0.0.3")
	rl.mu.Lock()
	assert.Len(t, rl.clients, 1, "idle clients are swept")
	rl.mu.Unlock()
}

func TestRateLimiterHandler(t *testing.T) {
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	r := newRouter(NewRateLimiter(1, 1, clock, logger.NewNoopLogger()).Handler())

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS("https://panel.example"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://panel.example")
	rec := serve(r, req)
	assert.Equal(t, "https://panel.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = serve(r, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://panel.example")
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestRequireSession(t *testing.T) {
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	manager, err := session.NewManager(session.NewMemoryStore(clock), session.Config{Secret: "k"}, clock)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireSession(manager, logger.NewNoopLogger()), func(c *gin.Context) {
		identity, ok := SessionFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, identity.UID)
	})

	_, token, err := manager.Create(context.Background(), 5, "UIDZED000001")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(manager.Cookie(token))
	rec := serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "UIDZED000001", rec.Body.String())

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	clock.Advance(session.DefaultTTL + time.Minute)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(manager.Cookie(token))
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNoopLogger()))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error","code":5000}`, rec.Body.String())
}
