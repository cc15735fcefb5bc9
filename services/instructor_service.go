package services

import (
	"context"
	"log"

	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/stores"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

// InstructorService onboards users onto the payment processor so they can
// sell courses.
type InstructorService struct {
	users     *stores.UserStore
	courses   *stores.CourseStore
	processor PaymentProcessor
}

func NewInstructorService(users *stores.UserStore, courses *stores.CourseStore, processor PaymentProcessor) *InstructorService {
	return &InstructorService{users: users, courses: courses, processor: processor}
}

func (s *InstructorService) caller(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgUserNotFound)
	}
	return user, err
}

// MakeInstructor returns the onboarding link for the caller's connected
// account, opening the account first if needed.
func (s *InstructorService) MakeInstructor(ctx context.Context, callerID uuid.UUID) (string, error) {
	user, err := s.caller(ctx, callerID)
	if err != nil {
		return "", err
	}

	accountID := ""
	if user.StripeAccountID != nil {
		accountID = *user.StripeAccountID
	}
	if accountID == "" {
		account, err := s.processor.CreateAccount(ctx, user.Email)
		if err != nil {
			return "", PaymentError("Stripe account create failed", err)
		}
		accountID = account.ID
		if err := s.users.SetStripeAccount(ctx, user.ID, accountID); err != nil {
			return "", err
		}
		log.Printf("✅ Stripe account %s opened for user %s", accountID, user.ID)
	}

	link, err := s.processor.CreateAccountLink(ctx, accountID)
	if err != nil {
		return "", PaymentError("Stripe onboarding link failed", err)
	}
	return link, nil
}

// AccountStatus promotes the caller to instructor once their connected
// account can take charges.
func (s *InstructorService) AccountStatus(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	user, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user.StripeAccountID == nil || *user.StripeAccountID == "" {
		return nil, AuthError(MsgUnauthorized)
	}

	account, err := s.processor.RetrieveAccount(ctx, *user.StripeAccountID)
	if err != nil {
		return nil, PaymentError("Stripe account lookup failed", err)
	}
	if !account.ChargesEnabled {
		return nil, AuthError(MsgUnauthorized)
	}
	return s.users.PromoteToInstructor(ctx, user.ID, datatypes.JSON(account.Raw))
}

func (s *InstructorService) CurrentInstructor(ctx context.Context, callerID uuid.UUID) error {
	user, err := s.caller(ctx, callerID)
	if err != nil {
		return err
	}
	if !user.IsInstructor() {
		return AuthError(MsgUnauthorized)
	}
	return nil
}

func (s *InstructorService) InstructorCourses(ctx context.Context, callerID uuid.UUID) ([]models.Course, error) {
	return s.courses.ListByInstructor(ctx, callerID)
}
