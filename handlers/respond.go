package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/course_market/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// respondError writes every failure the same way: status 400 with a short
// plain-text message. Causes stay in the log.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if svcErr.Err != nil {
			log.Printf("❌ %s %s: %v", c.Method(), c.Path(), svcErr.Err)
		}
		return c.Status(fiber.StatusBadRequest).SendString(svcErr.Message)
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).SendString(services.MsgGeneric)
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return services.ValidationError("Cannot parse request body")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return services.ValidationError("Invalid " + verrs[0].Field())
		}
		return services.ValidationError("Invalid request")
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.ValidationError("Invalid " + name)
	}
	return id, nil
}
