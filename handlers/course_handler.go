package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CourseHandler struct {
	Courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{Courses: courses}
}

type CourseRequest struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Price       *float64      `json:"price" validate:"omitempty,gte=0"`
	Image       *models.Image `json:"image"`
}

func (r CourseRequest) input() services.CourseInput {
	return services.CourseInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Image:       r.Image,
	}
}

type LessonRequest struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Content     *string       `json:"content"`
	Video       *models.Video `json:"video"`
	FreePreview *bool         `json:"free_preview"`
}

func (r LessonRequest) input() services.LessonInput {
	return services.LessonInput{
		Title:       r.Title,
		Content:     r.Content,
		Video:       r.Video,
		FreePreview: r.FreePreview,
	}
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req CourseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	course, err := h.Courses.Create(c.UserContext(), middleware.CallerID(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) Read(c *fiber.Ctx) error {
	course, err := h.Courses.Read(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) ListPublished(c *fiber.Ctx) error {
	courses, err := h.Courses.ListPublished(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(courses)
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	var req CourseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	course, err := h.Courses.Update(c.UserContext(), c.Params("slug"), middleware.CallerID(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) AddLesson(c *fiber.Ctx) error {
	instructorID, err := paramID(c, "instructorId")
	if err != nil {
		return respondError(c, err)
	}
	var req LessonRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	course, err := h.Courses.AddLesson(c.UserContext(), c.Params("slug"), instructorID, middleware.CallerID(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) UpdateLesson(c *fiber.Ctx) error {
	var req LessonRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	lessonID, err := uuid.Parse(req.ID)
	if err != nil {
		return respondError(c, services.ValidationError("Invalid lesson id"))
	}
	if _, err := h.Courses.UpdateLesson(c.UserContext(), c.Params("slug"), middleware.CallerID(c), lessonID, req.input()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CourseHandler) RemoveLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "lessonId")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.Courses.RemoveLesson(c.UserContext(), c.Params("slug"), lessonID, middleware.CallerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CourseHandler) Publish(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	course, err := h.Courses.Publish(c.UserContext(), courseID, middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) Unpublish(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	course, err := h.Courses.Unpublish(c.UserContext(), courseID, middleware.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}
