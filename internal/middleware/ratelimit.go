package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/HammerMeetNail/vibenet/internal/handlers"
	"github.com/HammerMeetNail/vibenet/internal/logging"
)

// KeyFunc derives the rate limit bucket for a request.
type KeyFunc func(r *http.Request) string

// Counter counts hits in a fixed window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter counts hits with INCR and sets the window expiry on the first hit.
func NewRedisCounter(client *redis.Client) Counter {
	if client == nil {
		return nil
	}
	return &redisCounter{client: client}
}

func (c *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimiter enforces limit hits per window per key. Counts live in Redis so they
// are shared across instances; when Redis is unavailable each instance falls back
// to an in-process token bucket of the same rate.
type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	prefix  string
	keyFunc KeyFunc

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

func NewRateLimiter(counter Counter, limit int64, window time.Duration, prefix string, keyFunc KeyFunc) *RateLimiter {
	if keyFunc == nil {
		keyFunc = ByClientIP
	}
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		keyFunc: keyFunc,
		local:   make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.prefix + rl.keyFunc(r)
		allowed, remaining, reset := rl.allow(r.Context(), key)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

		if !allowed {
			retry := int64(time.Until(reset).Seconds())
			if retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, int64, time.Time) {
	reset := time.Now().Truncate(rl.window).Add(rl.window)

	if rl.counter != nil {
		count, err := rl.counter.Incr(ctx, key, rl.window)
		if err == nil {
			remaining := rl.limit - count
			if remaining < 0 {
				remaining = 0
			}
			return count <= rl.limit, remaining, reset
		}
		logging.Warn("Rate limit counter unavailable, using local limiter", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
	}

	limiter := rl.localLimiter(key)
	if !limiter.Allow() {
		return false, 0, reset
	}
	return true, int64(limiter.Tokens()), reset
}

func (rl *RateLimiter) localLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.local[key]
	if !ok {
		every := rate.Every(rl.window / time.Duration(rl.limit))
		limiter = rate.NewLimiter(every, int(rl.limit))
		rl.local[key] = limiter
	}
	return limiter
}

// ByClientIP keys requests by the caller's IP.
func ByClientIP(r *http.Request) string {
	return "ip:" + GetClientIP(r)
}

// ByUser keys requests by the authenticated user, falling back to the IP.
func ByUser(r *http.Request) string {
	if user := handlers.GetUserFromContext(r.Context()); user != nil {
		return "user:" + user.ID.String()
	}
	return ByClientIP(r)
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if host, _, err := net.SplitHostPort(first); err == nil {
			return host
		}
		return first
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// NewAuthRateLimiter limits login and registration attempts per client IP.
func NewAuthRateLimiter(counter Counter, perMinute int64) *RateLimiter {
	return NewRateLimiter(counter, perMinute, time.Minute, "ratelimit:auth:", ByClientIP)
}

// NewFriendRequestRateLimiter limits friend requests sent per user.
func NewFriendRequestRateLimiter(counter Counter, perHour int64) *RateLimiter {
	return NewRateLimiter(counter, perHour, time.Hour, "ratelimit:friend_request:", ByUser)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(handlers.ErrorResponse{Error: message})
}
