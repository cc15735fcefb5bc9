package routes

import (
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(api fiber.Router, d Deps) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/courses", d.Courses.ListPublished)
}
