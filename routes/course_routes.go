package routes

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

// CourseRoutes registers the fixed-prefix routes before the generic
// /course/:slug/:lessonId so they are matched first.
func CourseRoutes(api fiber.Router, d Deps, protected fiber.Handler) {
	course := api.Group("/course")

	course.Post("/upload-image", d.Courses.UploadImage)
	course.Post("/video-upload/:instructorId", protected, d.Courses.UploadVideo)
	course.Post("/remove-video/:courseId", protected, d.Courses.RemoveVideo)

	course.Put("/publish/:courseId", protected, d.Courses.Publish)
	course.Put("/unpublish/:courseId", protected, d.Courses.Unpublish)

	course.Post("/lesson/:slug/:instructorId", protected, d.Courses.AddLesson)
	course.Put("/lesson/:slug/:instructorId", protected, d.Courses.UpdateLesson)

	course.Post("/", protected, middleware.InstructorRequired(d.Users), d.Courses.Create)
	course.Get("/:slug", d.Courses.Read)
	course.Put("/:slug", protected, d.Courses.Update)
	course.Put("/:slug/:lessonId", protected, d.Courses.RemoveLesson)
}
