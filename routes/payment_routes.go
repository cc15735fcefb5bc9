package routes

import (
	"github.com/gofiber/fiber/v2"
)

func EnrollmentRoutes(api fiber.Router, d Deps, protected fiber.Handler) {
	api.Get("/check-enrollment/:courseId", protected, d.Enrollments.CheckEnrollment)
	api.Post("/free-enrollment/:courseId", protected, d.Enrollments.FreeEnrollment)
	api.Post("/paid-enrollment/:courseId", protected, d.Enrollments.PaidEnrollment)
	api.Get("/stripe-success/:courseId", protected, d.Enrollments.StripeSuccess)
	api.Post("/stripe-webhook", d.Enrollments.StripeWebhook)
	api.Get("/user-courses", protected, d.Enrollments.UserCourses)
}
