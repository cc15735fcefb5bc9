package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/services"
	"github.com/gofiber/fiber/v2"
)

type InstructorHandler struct {
	Instructors *services.InstructorService
}

func NewInstructorHandler(instructors *services.InstructorService) *InstructorHandler {
	return &InstructorHandler{Instructors: instructors}
}

// MakeInstructor answers with the processor's onboarding URL.
func (h *InstructorHandler) MakeInstructor(c *fiber.Ctx) error {
	link, err := h.Instructors.MakeInstructor(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(link)
}

func (h *InstructorHandler) AccountStatus(c *fiber.Ctx) error {
	user, err := h.Instructors.AccountStatus(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *InstructorHandler) CurrentInstructor(c *fiber.Ctx) error {
	if err := h.Instructors.CurrentInstructor(c.UserContext(), middleware.CallerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *InstructorHandler) InstructorCourses(c *fiber.Ctx) error {
	courses, err := h.Instructors.InstructorCourses(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}
