package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"youclone/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitTimeout = 200 * time.Millisecond

// RateLimiter enforces a fixed-window request budget per caller in Redis.
// A nil *RateLimiter or a nil client lets every request through.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter returns nil when rdb is nil so routes can use it unconditionally.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if rdb == nil || limit <= 0 || window <= 0 {
		return nil
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow counts one hit for id on resource. It reports the hits remaining in
// the current window.
func (l *RateLimiter) Allow(ctx context.Context, resource, id string) (allowed bool, remaining int, err error) {
	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// INCR and read the TTL in one round trip
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		return false, 0, err
	}

	// A key without TTL is a new window or one whose EXPIRE was lost
	if ttl.Val() < 0 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, err
		}
	}

	cnt := incr.Val()
	if cnt > int64(l.limit) {
		return false, 0, nil
	}
	return true, l.limit - int(cnt), nil
}

// Middleware limits the routes it is attached to under the resource name.
// Requests are keyed by authenticated user, else by client IP. Redis
// failures let the request through.
func (l *RateLimiter) Middleware(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		id := "ip:" + c.ClientIP()
		if userID, err := getUserIDFromContext(c); err == nil {
			id = "user:" + userID.Hex()
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), rateLimitTimeout)
		allowed, remaining, err := l.Allow(ctx, resource, id)
		cancel()
		if err != nil {
			requestLogger(c).WithError(err).WithField("resource", resource).Warn("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			observability.RateLimitRejections.WithLabelValues(resource).Inc()
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
