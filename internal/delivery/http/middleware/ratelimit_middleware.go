package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"clinic-records/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultRateLimit  = 5
	defaultRateWindow = 15 * time.Minute
)

// RateLimiter counts requests per endpoint and client IP in Redis. A nil client or a Redis
// failure lets the request through.
type RateLimiter struct {
	client *redis.Client
	log    *logrus.Logger
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, log *logrus.Logger, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	return &RateLimiter{
		client: client,
		log:    log,
		limit:  limit,
		window: window,
	}
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)
		key := RateLimitKey(r.URL.Path, clientIP)

		allowed, err := l.allow(r.Context(), key)
		if err != nil {
			l.log.WithFields(logrus.Fields{
				"ip":    clientIP,
				"path":  r.URL.Path,
				"error": err.Error(),
			}).Warn("Rate limit check failed")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			l.log.WithFields(logrus.Fields{
				"ip":   clientIP,
				"path": r.URL.Path,
			}).Warn("Rate limit exceeded")
			response.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil {
		return true, nil
	}

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	// The window starts with the first request and is not extended by later ones.
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

func RateLimitKey(endpoint, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// ClientIP prefers the first X-Forwarded-For entry and falls back to the remote address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
