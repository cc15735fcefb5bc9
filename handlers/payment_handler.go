package handlers

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/payments"
	"github.com/gofiber/fiber/v2"
)

func (h *EnrollmentHandler) PaidEnrollment(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	sessionID, err := h.Enrollments.PaidEnrollment(c.UserContext(), middleware.CallerID(c), courseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"session_id": sessionID})
}

// StripeSuccess is hit by the client after the checkout redirect. The
// payment is checked with Stripe before access is granted.
func (h *EnrollmentHandler) StripeSuccess(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return respondError(c, err)
	}
	ok, course, err := h.Enrollments.PaymentSuccess(c.UserContext(), middleware.CallerID(c), courseID)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{"success": true, "course": course})
}

func (h *EnrollmentHandler) StripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	if err := h.Enrollments.HandleWebhook(c.UserContext(), payload, c.Get(payments.SignatureHeader)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}
