package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func limitByIP(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString(message)
		},
	})
}

func LoginRateLimiter() fiber.Handler {
	return limitByIP(5, time.Minute, "Too many login attempts. Try again later.")
}

// ForgotPasswordRateLimiter also caps how fast reset codes can be guessed.
func ForgotPasswordRateLimiter() fiber.Handler {
	return limitByIP(3, 5*time.Minute, "Too many reset requests. Try again later.")
}

func ResetPasswordRateLimiter() fiber.Handler {
	return limitByIP(10, 5*time.Minute, "Too many reset attempts. Try again later.")
}
