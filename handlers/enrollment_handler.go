package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/services"
	"github.com/gofiber/fiber/v2"
)

type EnrollmentHandler struct {
	Enrollments *services.EnrollmentService
}

func NewEnrollmentHandler(enrollments *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{Enrollments: enrollments}
}

func (h *EnrollmentHandler) CheckEnrollment(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	enrolled, course, err := h.Enrollments.CheckEnrollment(c.UserContext(), middleware.CallerID(c), courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": enrolled, "course": course})
}

func (h *EnrollmentHandler) FreeEnrollment(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	course, err := h.Enrollments.FreeEnrollment(c.UserContext(), middleware.CallerID(c), courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Congratulations! You have successfully enrolled",
		"course":  course,
	})
}

func (h *EnrollmentHandler) UserCourses(c *fiber.Ctx) error {
	courses, err := h.Enrollments.ListEnrolledCourses(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}
