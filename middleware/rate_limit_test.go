package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NomadCrew/feedback-portal/types"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(l *SubmissionRateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler())
	router.POST("/feedback", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func postFeedback(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/feedback", nil)
	req.RemoteAddr = "192.0.2.10:52000"
	router.ServeHTTP(w, req)
	return w
}

func TestSubmissionRateLimiter_Redis(t *testing.T) {
	const key = "ratelimit:feedback:192.0.2.10"
	window := time.Minute

	t.Run("first request opens the window", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetVal(1)
		mock.ExpectExpire(key, window).SetVal(true)

		w := postFeedback(newRateLimitedRouter(NewSubmissionRateLimiter(client, 2, window)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("within limit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetVal(2)

		w := postFeedback(newRateLimitedRouter(NewSubmissionRateLimiter(client, 2, window)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over limit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetVal(3)
		mock.ExpectTTL(key).SetVal(42 * time.Second)

		w := postFeedback(newRateLimitedRouter(NewSubmissionRateLimiter(client, 2, window)))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "42", w.Header().Get("Retry-After"))
		var body types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "RATE_LIMITED", body.Type)
		assert.Equal(t, "retry after 42 seconds", body.Details)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure lets the request through", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

		w := postFeedback(newRateLimitedRouter(NewSubmissionRateLimiter(client, 2, window)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmissionRateLimiter_Local(t *testing.T) {
	limiter := NewSubmissionRateLimiter(nil, 2, time.Hour)
	router := newRateLimitedRouter(limiter)

	assert.Equal(t, http.StatusCreated, postFeedback(router).Code)
	assert.Equal(t, http.StatusCreated, postFeedback(router).Code)

	w := postFeedback(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	allowed, _ := limiter.Allow(context.Background(), "198.51.100.7")
	assert.True(t, allowed, "other clients keep their own bucket")
}

func (l *SubmissionRateLimiter) trackedClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func TestSubmissionRateLimiter_LocalEvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewSubmissionRateLimiter(nil, 10, time.Minute)
	limiter.now = func() time.Time { return clock }

	for i := 0; i < 5000; i++ {
		allowed, _ := limiter.Allow(context.Background(), fmt.Sprintf("10.0.%d.%d", i/256, i%256))
		require.True(t, allowed)
	}
	assert.Equal(t, 5000, limiter.trackedClients())

	clock = clock.Add(30 * time.Second)
	allowed, _ := limiter.Allow(context.Background(), "10.0.0.0")
	require.True(t, allowed)
	assert.Equal(t, 5000, limiter.trackedClients(), "clients seen within the window are kept")

	clock = clock.Add(time.Minute)
	allowed, _ = limiter.Allow(context.Background(), "203.0.113.9")
	require.True(t, allowed)
	assert.Equal(t, 1, limiter.trackedClients())
}

func TestSubmissionRateLimiter_LocalKeepsActiveLimit(t *testing.T) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewSubmissionRateLimiter(nil, 2, time.Minute)
	limiter.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow(context.Background(), "198.51.100.7")
		require.True(t, allowed)
	}

	clock = clock.Add(10 * time.Second)
	allowed, retryAfter := limiter.Allow(context.Background(), "198.51.100.7")
	assert.False(t, allowed)
	assert.InDelta(t, 20, retryAfter.Seconds(), 0.01)
}
