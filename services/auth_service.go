package services

import (
	"context"
	"log"
	"strings"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/notifications"
	"github.com/anjiri1684/course_market/stores"
	"github.com/anjiri1684/course_market/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthService struct {
	cfg    *config.Config
	users  *stores.UserStore
	tokens *stores.TokenStore
	mailer Mailer
	now    func() time.Time
}

func NewAuthService(cfg *config.Config, users *stores.UserStore, tokens *stores.TokenStore, mailer Mailer) *AuthService {
	return &AuthService{cfg: cfg, users: users, tokens: tokens, mailer: mailer, now: time.Now}
}

type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return ValidationError(MsgNameRequired)
	}
	if len(password) < minPasswordLength {
		return ValidationError(MsgShortPassword)
	}
	if email == "" {
		return ValidationError("Email is required")
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ConflictError(MsgEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	user := &models.User{Name: name, Email: email, Password: string(hashed), Role: models.RoleSubscriber}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return ConflictError(MsgEmailTaken)
		}
		return err
	}
	log.Printf("✅ Registered user %s", user.ID)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgNoUser)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, AuthError(MsgPasswordMismatch)
	}

	token, expiresAt, err := utils.GenerateSessionToken(user.ID, s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		return nil, errors.Wrap(err, "sign session token")
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes token if it is still a valid session token. Anything else
// is ignored so that signing out always succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, expiresAt, err := utils.ParseSessionToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.cfg.SessionTTL)
	}
	return s.tokens.Revoke(ctx, utils.TokenHash(token), expiresAt)
}

func (s *AuthService) CurrentUser(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgUserNotFound)
	}
	return user, err
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	code, err := utils.GenerateResetCode()
	if err != nil {
		return errors.Wrap(err, "generate reset code")
	}

	found, err := s.users.SetResetCode(ctx, email, code, s.now().Add(s.cfg.ResetCodeTTL))
	if err != nil {
		return err
	}
	if !found {
		return NotFoundError(MsgUserNotFound)
	}

	msg := notifications.PasswordResetMessage(s.cfg.AppName, email, code)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return ExternalError("Email could not be sent. Try again.", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ValidationError(MsgShortPassword)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return AuthError(MsgWrongCode)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	ok, err := s.users.ConsumeResetCode(ctx, normalizeEmail(email), code, string(hashed), s.now())
	if err != nil {
		return err
	}
	if !ok {
		return AuthError(MsgWrongCode)
	}
	return nil
}
