package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/common"
	"github.com/postguard/postguard/pkg/infra/prometheus"
	"github.com/postguard/postguard/pkg/ratelimit"
)

const (
	xForwardedForHeader = "X-Forwarded-For"
	xRealIPHeader       = "X-Real-IP"
)

type rateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter *ratelimit.Limiter
	route   string
}

func NewRateLimitMiddleware(
	logger *logrus.Logger,
	limiter *ratelimit.Limiter,
	route string,
) Middleware {
	return &rateLimitMiddleware{
		logger:  logger,
		limiter: limiter,
		route:   route,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := clientKey(ctx)
		decision := m.limiter.Allow(key)

		ctx.Set("X-RateLimit-Limit", fmt.Sprintf("%d", decision.Limit))
		ctx.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))
		ctx.Set("X-RateLimit-Reset", fmt.Sprintf("%d", decision.Reset.Unix()))

		if !decision.Allowed {
			prometheus.RateLimitRejectionTotal.WithLabelValues(m.route).Inc()
			m.logger.WithFields(logrus.Fields{
				"route":      m.route,
				"client_key": key,
			}).Debug("rate limit exceeded")
			ctx.Set("Retry-After", fmt.Sprintf("%d", decision.RetryAfterSeconds))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "too many requests, please try again later",
				"retry_after": decision.RetryAfterSeconds,
			})
		}

		ctx.Locals(common.ClientKeyContextKey, key)
		return ctx.Next()
	}
}

// clientKey identifies the caller: the first X-Forwarded-For entry when the
// request came through a proxy, then X-Real-IP, then the connection address.
func clientKey(ctx *fiber.Ctx) string {
	if forwarded := ctx.Get(xForwardedForHeader); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := ctx.Get(xRealIPHeader); realIP != "" {
		return realIP
	}
	return ctx.IP()
}
