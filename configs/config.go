package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppName     string
	ClientURL   string
	DatabaseURL string

	JWTSecret    string
	SessionTTL   time.Duration
	ResetCodeTTL time.Duration

	StripeAPIBase       string
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeRedirectURL   string
	StripeSuccessURL    string
	StripeCancelURL     string
	Currency            string
	PlatformFeePercent  int64

	ImgbbAPIBase  string
	ImgbbAPIKey   string
	CloudinaryURL string
	VideoFolder   string

	SendgridAPIKey string
	EmailSender    string
	EmailFromName  string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	HTTPClientTimeout time.Duration
}

// Load reads .env (if present) and the process environment once at startup.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		AppName:     getEnv("APP_NAME", "Blink"),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		SessionTTL:   getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		ResetCodeTTL: getEnvDuration("RESET_CODE_TTL", 15*time.Minute),

		StripeAPIBase:       getEnv("STRIPE_API_BASE", "https://api.stripe.com"),
		StripeSecretKey:     getEnv("STRIPE_SECRET", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeRedirectURL:   getEnv("STRIPE_REDIRECT_URL", "http://localhost:3000/stripe/callback"),
		StripeSuccessURL:    getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/stripe/success"),
		StripeCancelURL:     getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/stripe/cancel"),
		Currency:            getEnv("CURRENCY", "usd"),
		PlatformFeePercent:  int64(getEnvInt("PLATFORM_FEE_PERCENT", 30)),

		ImgbbAPIBase:  getEnv("IMGBB_API_BASE", "https://api.imgbb.com"),
		ImgbbAPIKey:   getEnv("IMGBB_API_KEY", ""),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		VideoFolder:   getEnv("VIDEO_FOLDER", "course_videos"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "support@blink.com"),
		EmailFromName:  getEnv("EMAIL_SENDER_NAME", "Blink LTD"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_FULL_NAME", "Platform Instructor"),

		HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET is not set. Sessions cannot be issued.")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error parsing duration %s=%q: %v", key, value, err)
		return defaultValue
	}
	return d
}
