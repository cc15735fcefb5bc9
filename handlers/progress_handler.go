package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	Progress *services.ProgressService
}

func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{Progress: progress}
}

type LessonProgressRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
	LessonID string `json:"lessonId" validate:"required,uuid"`
}

type CourseProgressRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
}

func (h *ProgressHandler) parseLesson(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	var req LessonProgressRequest
	if err := parseBody(c, &req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return uuid.MustParse(req.CourseID), uuid.MustParse(req.LessonID), nil
}

func (h *ProgressHandler) MarkCompleted(c *fiber.Ctx) error {
	courseID, lessonID, err := h.parseLesson(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Progress.MarkCompleted(c.UserContext(), middleware.CallerID(c), courseID, lessonID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProgressHandler) MarkIncomplete(c *fiber.Ctx) error {
	courseID, lessonID, err := h.parseLesson(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Progress.MarkIncomplete(c.UserContext(), middleware.CallerID(c), courseID, lessonID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProgressHandler) ListCompleted(c *fiber.Ctx) error {
	var req CourseProgressRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	ids, err := h.Progress.ListCompleted(c.UserContext(), middleware.CallerID(c), uuid.MustParse(req.CourseID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ids)
}
