package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/infrastructure/http/response"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/pkg/apperror"
)

type RateLimitMiddleware struct {
	rateLimitService outbound.RateLimitService
	logger           logger.Logger
	attempts         int
	window           time.Duration
	blockDuration    time.Duration
}

func NewRateLimitMiddleware(rateLimitService outbound.RateLimitService, logger logger.Logger, attempts int, window, blockDuration time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		logger:           logger,
		attempts:         attempts,
		window:           window,
		blockDuration:    blockDuration,
	}
}

// Limit throttles per client IP. Redis failures let the request through:
// registration availability beats throttle precision.
func (m *RateLimitMiddleware) Limit(scope string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := fmt.Sprintf("%s:ip:%s", scope, ClientIP(r))

			blocked, err := m.rateLimitService.IsBlocked(ctx, key)
			if err != nil {
				m.logger.Error(ctx, "failed to check block status", err, map[string]interface{}{"key": key})
			}
			if blocked {
				m.reject(w, m.blockDuration)
				return
			}

			allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.attempts, m.window)
			if err != nil {
				m.logger.Error(ctx, "failed to check rate limit", err, map[string]interface{}{"key": key})
			}
			if !allowed {
				if err := m.rateLimitService.Block(ctx, key, m.blockDuration, "rate limit exceeded"); err != nil {
					m.logger.Error(ctx, "failed to block client", err, map[string]interface{}{"key": key})
				}
				m.logger.Warn(ctx, "rate limit exceeded", map[string]interface{}{
					"key":  key,
					"path": r.URL.Path,
				})
				m.reject(w, m.blockDuration)
				return
			}

			if err := m.rateLimitService.Increment(ctx, key, m.window); err != nil {
				m.logger.Error(ctx, "failed to record rate limit attempt", err, map[string]interface{}{"key": key})
			}

			next.ServeHTTP(w, r)
		}
	}
}

func (m *RateLimitMiddleware) reject(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
	response.WriteError(w, &apperror.AppError{
		Code:    "RATE_LIMITED",
		Message: "Too many requests. Please try again later.",
		Status:  http.StatusTooManyRequests,
	})
}

// ClientIP extracts the client address, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
