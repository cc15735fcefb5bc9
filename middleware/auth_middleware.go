package middleware

import (
	"log"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/stores"
	"github.com/anjiri1684/course_market/utils"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	SessionCookie = "token"

	localToken  = "user"
	localUserID = "userID"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).SendString("Unauthorized")
}

// Protected verifies the session cookie, refuses signed-out tokens and
// stores the caller's id for the handlers.
func Protected(cfg *config.Config, tokens *stores.TokenStore) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(cfg.JWTSecret),
		TokenLookup:    "cookie:" + SessionCookie,
		ContextKey:     localToken,
		SuccessHandler: session(tokens),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func session(tokens *stores.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(localToken).(*jwt.Token)
		if !ok {
			return unauthorized(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}
		userID, _, err := utils.UserIDFromClaims(claims)
		if err != nil {
			return unauthorized(c)
		}

		revoked, err := tokens.IsRevoked(c.UserContext(), utils.TokenHash(token.Raw))
		if err != nil {
			log.Printf("❌ Revocation check failed: %v", err)
			return unauthorized(c)
		}
		if revoked {
			return unauthorized(c)
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

// CallerID returns the id stored by the session guard, or uuid.Nil.
func CallerID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}

// InstructorRequired lets only users holding the instructor role through.
func InstructorRequired(users *stores.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.FindByID(c.UserContext(), CallerID(c))
		if err != nil || !user.IsInstructor() {
			return unauthorized(c)
		}
		return c.Next()
	}
}
