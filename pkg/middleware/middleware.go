package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

// Transport carries the per-route rate limit middlewares, keyed by the route
// group name used in configuration.
type Transport struct {
	RateLimiters map[string]Middleware
}

// RateLimit returns the configured middleware for the named route group, or a
// passthrough when the group has no limiter.
func (t *Transport) RateLimit(route string) fiber.Handler {
	if m, ok := t.RateLimiters[route]; ok {
		return m.Middleware()
	}
	return func(ctx *fiber.Ctx) error {
		return ctx.Next()
	}
}
