package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/services"
	"github.com/gofiber/fiber/v2"
)

type UploadImageRequest struct {
	Image string `json:"image"`
}

func (h *CourseHandler) UploadImage(c *fiber.Ctx) error {
	var req UploadImageRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	image, err := h.Courses.UploadImage(c.UserContext(), req.Image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(image)
}

// UploadVideo expects the file in the multipart field "video".
func (h *CourseHandler) UploadVideo(c *fiber.Ctx) error {
	instructorID, err := paramID(c, "instructorId")
	if err != nil {
		return respondError(c, err)
	}
	header, err := c.FormFile("video")
	if err != nil {
		return respondError(c, services.ValidationError("No video"))
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	video, err := h.Courses.UploadVideo(c.UserContext(), instructorID, middleware.CallerID(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

func (h *CourseHandler) RemoveVideo(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	var video models.Video
	if err := parseBody(c, &video); err != nil {
		return respondError(c, err)
	}
	if err := h.Courses.RemoveVideo(c.UserContext(), courseID, middleware.CallerID(c), video); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
