package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const submissionKeyPrefix = "ratelimit:feedback:"

// SubmissionRateLimiter limits feedback submissions per client IP.
//
// With a Redis client it keeps a fixed window counter shared by every API
// instance, and lets requests through when Redis fails. Without one it keeps
// an in-process token bucket per IP.
type SubmissionRateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration

	mu        sync.Mutex
	limiters  map[string]*localLimiter
	lastSweep time.Time
	now       func() time.Time
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewSubmissionRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *SubmissionRateLimiter {
	return &SubmissionRateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		limiters:    make(map[string]*localLimiter),
		now:         time.Now,
	}
}

// Allow reports whether another submission from key fits in the window and,
// when it does not, how long the caller should wait.
func (l *SubmissionRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.redisClient != nil {
		return l.allowRedis(ctx, key)
	}
	return l.allowLocal(key)
}

func (l *SubmissionRateLimiter) allowRedis(ctx context.Context, key string) (bool, time.Duration) {
	redisKey := submissionKeyPrefix + key

	count, err := l.redisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		logger.GetLogger().Warnw("Rate limit check failed, allowing request", "key", redisKey, "error", err)
		return true, 0
	}
	if count == 1 {
		if err := l.redisClient.Expire(ctx, redisKey, l.window).Err(); err != nil {
			logger.GetLogger().Warnw("Failed to set rate limit window", "key", redisKey, "error", err)
		}
	}
	if count <= int64(l.limit) {
		return true, 0
	}

	ttl, err := l.redisClient.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl
}

func (l *SubmissionRateLimiter) allowLocal(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}
	entry, ok := l.limiters[key]
	if !ok {
		entry = &localLimiter{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops clients idle for a full window. Their bucket has refilled, so
// a fresh limiter behaves the same. Callers hold l.mu.
func (l *SubmissionRateLimiter) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.window {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// Middleware rejects over-limit requests with a RATE_LIMITED error and a
// Retry-After header.
func (l *SubmissionRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := l.Allow(c.Request.Context(), c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		if allowed {
			c.Next()
			return
		}

		seconds := int(math.Ceil(retryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", fmt.Sprintf("%d", seconds))

		_ = c.Error(apperrors.RateLimitExceeded("Too many submissions. Please try again later.", seconds))
		c.Abort()
	}
}
