package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/database/dbtest"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/notifications"
	"github.com/anjiri1684/course_market/payments"
	"github.com/anjiri1684/course_market/services"
	"github.com/anjiri1684/course_market/stores"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []notifications.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) last() notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakeProcessor struct {
	checkouts      []payments.CheckoutParams
	sessions       map[string]*payments.CheckoutSession
	retrieveErr    error
	chargesEnabled bool
	accountsMade   int
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{sessions: map[string]*payments.CheckoutSession{}}
}

func (p *fakeProcessor) CreateCheckoutSession(_ context.Context, params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	p.checkouts = append(p.checkouts, params)
	session := &payments.CheckoutSession{
		ID:            "cs_" + uuid.NewString(),
		PaymentStatus: "unpaid",
		AmountTotal:   params.AmountCents,
		Currency:      "usd",
		Metadata:      params.Metadata,
	}
	p.sessions[session.ID] = session
	return session, nil
}

func (p *fakeProcessor) RetrieveSession(_ context.Context, id string) (*payments.CheckoutSession, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	session, ok := p.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

func (p *fakeProcessor) pay(id string) { p.sessions[id].PaymentStatus = "paid" }

func (p *fakeProcessor) CreateAccount(_ context.Context, _ string) (*payments.Account, error) {
	p.accountsMade++
	return &payments.Account{ID: "acct_test"}, nil
}

func (p *fakeProcessor) CreateAccountLink(_ context.Context, accountID string) (string, error) {
	return "https://connect.stripe.com/setup/" + accountID, nil
}

func (p *fakeProcessor) RetrieveAccount(_ context.Context, accountID string) (*payments.Account, error) {
	return &payments.Account{
		ID:             accountID,
		ChargesEnabled: p.chargesEnabled,
		Raw:            []byte(`{"id":"` + accountID + `","charges_enabled":true}`),
	}, nil
}

type fakeVideos struct {
	deleted []string
}

func (v *fakeVideos) UploadVideo(_ context.Context, _ interface{}) (*models.Video, error) {
	return &models.Video{PublicID: "course_videos/abc", SecureURL: "https://res.cloudinary.com/v/abc.mp4"}, nil
}

func (v *fakeVideos) DeleteVideo(_ context.Context, publicID string) error {
	v.deleted = append(v.deleted, publicID)
	return nil
}

type fakeImages struct{}

func (fakeImages) UploadImage(_ context.Context, _ string) (*models.Image, error) {
	return &models.Image{DisplayURL: "https://i.ibb.co/x.png", DeleteURL: "https://ibb.co/del"}, nil
}

type env struct {
	db          *gorm.DB
	cfg         *config.Config
	users       *stores.UserStore
	tokens      *stores.TokenStore
	courses     *stores.CourseStore
	mailer      *fakeMailer
	processor   *fakeProcessor
	videos      *fakeVideos
	auth        *services.AuthService
	course      *services.CourseService
	enrollment  *services.EnrollmentService
	progress    *services.ProgressService
	instructors *services.InstructorService
}

const webhookSecret = "whsec_test"

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.New(t)
	cfg := &config.Config{
		AppName:            "Blink",
		JWTSecret:          "test-secret",
		SessionTTL:         7 * 24 * time.Hour,
		ResetCodeTTL:       15 * time.Minute,
		StripeSuccessURL:   "http://localhost:3000/stripe/success",
		StripeCancelURL:    "http://localhost:3000/stripe/cancel",
		PlatformFeePercent: 30,
	}
	e := &env{
		db:        db,
		cfg:       cfg,
		users:     stores.NewUserStore(db),
		tokens:    stores.NewTokenStore(db),
		courses:   stores.NewCourseStore(db),
		mailer:    &fakeMailer{},
		processor: newFakeProcessor(),
		videos:    &fakeVideos{},
	}
	e.auth = services.NewAuthService(cfg, e.users, e.tokens, e.mailer)
	e.course = services.NewCourseService(e.courses, e.videos, fakeImages{})
	e.enrollment = services.NewEnrollmentService(cfg, e.users, e.courses, e.processor, payments.NewWebhookVerifier(webhookSecret))
	e.progress = services.NewProgressService(stores.NewCompletionStore(db))
	e.instructors = services.NewInstructorService(e.users, e.courses, e.processor)
	return e
}

func (e *env) user(t *testing.T, email string, role string) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, Password: "x", Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) instructor(t *testing.T, email string) *models.User {
	t.Helper()
	u := e.user(t, email, models.RoleInstructor)
	require.NoError(t, e.users.SetStripeAccount(context.Background(), u.ID, "acct_"+u.ID.String()[:8]))
	return u
}

func price(p float64) *float64 { return &p }

func text(s string) *string { return &s }

func flag(b bool) *bool { return &b }

func requireKind(t *testing.T, err error, kind services.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, services.KindOf(err), "unexpected error: %v", err)
}
