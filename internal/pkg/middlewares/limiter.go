package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog/log"

	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
)

// IntakeLimiter caps submissions per client IP. A nil storage keeps counters in memory.
func IntakeLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().
				Str("evt.name", "http.limiter.reached").
				Str("ip", c.IP()).
				Str("path", c.Path()).
				Msg("intake rate limit reached")
			return apperr.ErrTooManyRequests.Msg("Too many submissions. Please wait a minute and try again.")
		},
	})
}
