package routes

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstructorRoutes(api fiber.Router, d Deps, protected fiber.Handler) {
	api.Post("/make-instructor", protected, d.Instructors.MakeInstructor)
	api.Post("/get-account-status", protected, d.Instructors.AccountStatus)
	api.Get("/current-instructor", protected, d.Instructors.CurrentInstructor)
	api.Get("/instructor-courses", protected, middleware.InstructorRequired(d.Users), d.Instructors.InstructorCourses)
}
