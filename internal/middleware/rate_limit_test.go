package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewWriteRateLimiter(client, limit, time.Minute, zap.NewNop())
	fixed := time.Date(2025, 1, 1, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	router := gin.New()
	router.POST("/api/recipes", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router, mr
}

func post(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/recipes", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	router, _ := setupLimitedRouter(t, 2)

	first := post(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, post(router, "10.0.0.1:1234").Code)

	blocked := post(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", blocked.Header().Get("Retry-After"))

	// Other clients have their own budget
	assert.Equal(t, http.StatusCreated, post(router, "10.0.0.2:1234").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	router, mr := setupLimitedRouter(t, 1)
	mr.SetError("ERR redis down")

	rr := post(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}
