package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/imamik/fxstack/internal/metrics"
)

// RateLimitMessage is returned with 429 responses.
const RateLimitMessage = "Rate limit exceeded. Please slow down."

// RateLimiter implements token bucket rate limiting per client identifier.
//
// Limiters for identifiers that have been idle long enough to refill their
// bucket are removed by a janitor goroutine, which runs until the context
// passed to NewRateLimiter is cancelled.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
}

// NewRateLimiter creates a new rate limiter.
//
// Parameters:
//   - ctx: Stops the cleanup goroutine when cancelled
//   - rps: Requests per second allowed
//   - burst: Burst size (number of requests that can be made in quick succession)
//   - cleanup: How often to clean up idle limiters (e.g., 1 minute)
func NewRateLimiter(ctx context.Context, rps float64, burst int, cleanup time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		cleanup:  cleanup,
	}

	go rl.cleanupLoop(ctx)

	return rl
}

// Allow reports whether a request from identifier may proceed.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	limiter, exists := rl.limiters[identifier]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[identifier] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// Len returns the number of tracked identifiers.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep removes limiters whose bucket is full again.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for identifier, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burst) {
			delete(rl.limiters, identifier)
		}
	}
}

// RateLimitByIP creates middleware that rate limits requests by client IP address.
//
// Rejected requests get 429 with the standard error body and are counted
// in the rate limit metric when m is non-nil.
//
// Example:
//
//	router.Use(RateLimitByIP(NewRateLimiter(ctx, 10.0, 20, time.Minute), m))
func RateLimitByIP(limiter *RateLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			if m != nil {
				m.RateLimitRejections.Inc()
			}
			GetLogger(c).Warn("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": RateLimitMessage,
			})
			return
		}

		c.Next()
	}
}
