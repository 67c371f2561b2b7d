package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedEngine(limiter *IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(limiter))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/form/", ok)
	r.POST("/form/", ok)
	return r
}

func serve(r http.Handler, method, ip string) int {
	req := httptest.NewRequest(method, "/form/", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitThrottlesPostsPerIP(t *testing.T) {
	r := newLimitedEngine(NewIPRateLimiter(rate.Every(time.Hour), 2))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "10.0.0.1"))

	// Other clients and page views are unaffected.
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "10.0.0.2"))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "10.0.0.1"))
}

func TestSweepForgetsIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 1)
	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")

	limiter.mu.Lock()
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	limiter.Sweep(30 * time.Minute)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}
