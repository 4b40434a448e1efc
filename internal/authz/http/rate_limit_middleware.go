package http

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimitCleanupInterval = 5 * time.Minute
	rateLimitIdleTimeout     = time.Hour
)

// rateLimiterStore holds per-caller rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-caller rate limiting using a token bucket.
//
// Authenticated callers are keyed by principal id, so it should run after Authorize.
// Anonymous callers on public routes are keyed by client IP. The cleanup goroutine
// stops when ctx is cancelled.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		key := rateLimitKey(c)
		limiter := store.getLimiter(key)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("caller", key),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter)
			return
		}

		c.Next()
	}
}

// RejectedRequestRateLimitMiddleware limits how many authorization rejections a
// client IP may collect. It must run before Authorize.
//
// Only requests that Authorize aborts with 401, 403 or 404 take a token from the
// IP's bucket, so callers that pass authorization are never slowed down here. Once
// the bucket is empty every request from that IP gets 429 until it refills, which
// stops outsiders from walking organization slugs through the ORG_NOT_FOUND and
// ORG_FORBIDDEN responses.
func RejectedRequestRateLimitMiddleware(
	ctx context.Context,
	rps float64,
	burst int,
	logger *slog.Logger,
) gin.HandlerFunc {
	store := newRateLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		limiter := store.getLimiter(key)

		if tokens := limiter.Tokens(); tokens < 1 {
			retryAfter := int(math.Ceil((1 - tokens) / rps))

			logger.Warn("rejected request limit exceeded",
				slog.String("caller", key),
				slog.Int("retry_after", retryAfter))

			abortTooManyRequests(c, retryAfter)
			return
		}

		c.Next()

		if c.IsAborted() && isAuthorizationRejection(c.Writer.Status()) {
			limiter.Allow()
		}
	}
}

func isAuthorizationRejection(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	default:
		return false
	}
}

func abortTooManyRequests(c *gin.Context, retryAfter int) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please retry after the specified delay.",
	})
	c.Abort()
}

// newRateLimiterStore creates a store whose cleanup goroutine stops when ctx is cancelled.
func newRateLimiterStore(ctx context.Context, rps float64, burst int) *rateLimiterStore {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}
	go store.cleanupStale(ctx, rateLimitCleanupInterval, rateLimitIdleTimeout)
	return store
}

func rateLimitKey(c *gin.Context) string {
	if principal, ok := GetPrincipal(c.Request.Context()); ok {
		return "user:" + principal.ID.String()
	}
	return "ip:" + c.ClientIP()
}

// getLimiter retrieves or creates the rate limiter for key.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale periodically removes limiters idle for longer than idle.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-idle))
		}
	}
}

// evictIdle deletes every limiter last used before threshold.
func (s *rateLimiterStore) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			s.limiters.Delete(key)
		}
		return true
	})
}
