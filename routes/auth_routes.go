package routes

import (
	"github.com/anjiri1684/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, d Deps, protected fiber.Handler) {
	api.Post("/register", d.Auth.Register)
	api.Post("/login", middleware.LoginRateLimiter(), d.Auth.Login)
	api.Post("/logout", d.Auth.Logout)
	api.Get("/current-user", protected, d.Auth.CurrentUser)
	api.Post("/forgot-password", middleware.ForgotPasswordRateLimiter(), d.Auth.ForgotPassword)
	api.Post("/reset-password", middleware.ResetPasswordRateLimiter(), d.Auth.ResetPassword)
}
