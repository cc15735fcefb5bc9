package services

import (
	"context"

	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/notifications"
	"github.com/anjiri1684/course_market/payments"
)

type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, p payments.CheckoutParams) (*payments.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*payments.CheckoutSession, error)
	CreateAccount(ctx context.Context, email string) (*payments.Account, error)
	CreateAccountLink(ctx context.Context, accountID string) (string, error)
	RetrieveAccount(ctx context.Context, accountID string) (*payments.Account, error)
}

type WebhookVerifier interface {
	ConstructEvent(payload []byte, header string) (*payments.Event, error)
}

type VideoStorage interface {
	UploadVideo(ctx context.Context, file interface{}) (*models.Video, error)
	DeleteVideo(ctx context.Context, publicID string) error
}

type ImageHost interface {
	UploadImage(ctx context.Context, base64Image string) (*models.Image, error)
}

type Mailer = notifications.Mailer
