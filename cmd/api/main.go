package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/database"
	"github.com/anjiri1684/course_market/handlers"
	"github.com/anjiri1684/course_market/jobs"
	"github.com/anjiri1684/course_market/media"
	"github.com/anjiri1684/course_market/notifications"
	"github.com/anjiri1684/course_market/payments"
	"github.com/anjiri1684/course_market/routes"
	"github.com/anjiri1684/course_market/services"
	"github.com/anjiri1684/course_market/stores"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.SeedInstructor(context.Background(), db, cfg); err != nil {
		log.Printf("⚠️ %v", err)
	}

	users := stores.NewUserStore(db)
	tokens := stores.NewTokenStore(db)
	courses := stores.NewCourseStore(db)
	completions := stores.NewCompletionStore(db)

	var mailer notifications.Mailer = notifications.ConsoleMailer{}
	if cfg.SendgridAPIKey != "" {
		mailer = notifications.NewSendGridMailer(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailSender)
		log.Println("✅ SendGrid mailer configured")
	} else {
		log.Println("⚠️ SENDGRID_API_KEY is not set. Emails will be printed to the log.")
	}

	var videos services.VideoStorage = media.DisabledVideoStorage{}
	if cfg.CloudinaryURL == "" {
		log.Println("⚠️ CLOUDINARY_URL is not set. Video upload and removal are disabled.")
	} else if cld, err := media.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.VideoFolder); err != nil {
		log.Printf("⚠️ %v. Video upload and removal are disabled.", err)
	} else {
		videos = cld
	}
	images := media.NewImgbbClient(cfg.ImgbbAPIBase, cfg.ImgbbAPIKey, cfg.HTTPClientTimeout)
	stripe := payments.NewStripeClient(cfg)
	webhooks := payments.NewWebhookVerifier(cfg.StripeWebhookSecret)

	auth := services.NewAuthService(cfg, users, tokens, mailer)
	course := services.NewCourseService(courses, videos, images)
	enrollment := services.NewEnrollmentService(cfg, users, courses, stripe, webhooks)
	progress := services.NewProgressService(completions)
	instructors := services.NewInstructorService(users, courses, stripe)

	c := cron.New()
	if _, err := jobs.NewCleanup(users, tokens).Schedule(c); err != nil {
		log.Fatalf("🔥 Failed to schedule cleanup job: %v", err)
	}
	c.Start()
	log.Println("✅ Cleanup job scheduled successfully.")

	app := routes.NewApp(routes.Deps{
		Cfg:         cfg,
		Users:       users,
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(auth),
		Courses:     handlers.NewCourseHandler(course),
		Enrollments: handlers.NewEnrollmentHandler(enrollment),
		Progress:    handlers.NewProgressHandler(progress),
		Instructors: handlers.NewInstructorHandler(instructors),
	})

	go func() {
		log.Printf("✅ Server is running on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("🔥 Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	<-c.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
