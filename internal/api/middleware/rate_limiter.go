package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ratelimit"
)

// RecognizeLimiter checks the per-IP budget for a request.
type RecognizeLimiter interface {
	CheckRecognizeLimit(ctx context.Context, clientIP string, limit int) error
}

// RateLimit guards the unauthenticated kiosk endpoints. A failing limiter
// backend fails open: a broken counter table should not stop check-ins.
func RateLimit(limiter RecognizeLimiter, limit int, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := limiter.CheckRecognizeLimit(c.Context(), c.IP(), limit)
		if err == nil {
			return c.Next()
		}

		if errors.Is(err, ratelimit.ErrLimitExceeded) {
			return domain.ErrRateLimitExceeded
		}

		logger.Warn("rate limiter backend error",
			slog.String("ip", c.IP()),
			slog.String("error", err.Error()),
		)
		return c.Next()
	}
}
