package routes

import (
	"github.com/gofiber/fiber/v2"
)

func ProgressRoutes(api fiber.Router, d Deps, protected fiber.Handler) {
	api.Post("/mark-completed", protected, d.Progress.MarkCompleted)
	api.Post("/mark-incomplete", protected, d.Progress.MarkIncomplete)
	api.Post("/list-completed", protected, d.Progress.ListCompleted)
}
