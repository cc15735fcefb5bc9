package routes

import (
	"log"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/handlers"
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/stores"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	Cfg    *config.Config
	Users  *stores.UserStore
	Tokens *stores.TokenStore

	Auth        *handlers.AuthHandler
	Courses     *handlers.CourseHandler
	Enrollments *handlers.EnrollmentHandler
	Progress    *handlers.ProgressHandler
	Instructors *handlers.InstructorHandler

	// DisableRequestLog turns off the access log, for tests.
	DisableRequestLog bool
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       d.Cfg.AppName,
		CaseSensitive: true,
		BodyLimit:     512 * 1024 * 1024,
		ReadTimeout:   60 * time.Second,
		WriteTimeout:  60 * time.Second,
		IdleTimeout:   60 * time.Second,
		JSONEncoder:   sonic.Marshal,
		JSONDecoder:   sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusBadRequest
			msg := "Error. Try again."
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).SendString(msg)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Cfg.ClientURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		MaxAge:           86400,
	}))
	if !d.DisableRequestLog {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	api := app.Group("/api")
	protected := middleware.Protected(d.Cfg, d.Tokens)

	PublicRoutes(api, d)
	AuthRoutes(api, d, protected)
	CourseRoutes(api, d, protected)
	EnrollmentRoutes(api, d, protected)
	ProgressRoutes(api, d, protected)
	InstructorRoutes(api, d, protected)

	return app
}
