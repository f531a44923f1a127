package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/receptionist/internal/metrics"
)

const secret = "test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(metrics.NewSchedulingMetrics(prometheus.NewRegistry())))
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/secure", AuthMiddleware(secret), RequireRole(RoleAdmin, RoleAgent), func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c, "anonymous"))
	})
	r.GET("/admin", AuthMiddleware(secret), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	agent, err := GenerateToken(secret, "voice-agent", RoleAgent, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, "voice-agent", RoleAgent, -time.Minute)
	require.NoError(t, err)
	forged, err := GenerateToken("other-secret", "voice-agent", RoleAdmin, time.Hour)
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/secure", agent)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "voice-agent", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/secure", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/secure", expired).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/secure", forged).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin", agent).Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter()
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))
}

func TestRateLimit(t *testing.T) {
	r := newRouter()
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 2})
	r.GET("/", rl.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
