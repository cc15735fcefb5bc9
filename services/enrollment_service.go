package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/payments"
	"github.com/anjiri1684/course_market/stores"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const paymentStatusPaid = "paid"

type EnrollmentService struct {
	cfg       *config.Config
	users     *stores.UserStore
	courses   *stores.CourseStore
	processor PaymentProcessor
	webhooks  WebhookVerifier
}

func NewEnrollmentService(cfg *config.Config, users *stores.UserStore, courses *stores.CourseStore, processor PaymentProcessor, webhooks WebhookVerifier) *EnrollmentService {
	return &EnrollmentService{cfg: cfg, users: users, courses: courses, processor: processor, webhooks: webhooks}
}

func (s *EnrollmentService) course(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgCourseNotFound)
	}
	return course, err
}

func (s *EnrollmentService) CheckEnrollment(ctx context.Context, callerID, courseID uuid.UUID) (bool, *models.Course, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return false, nil, err
	}
	enrolled, err := s.users.IsEnrolled(ctx, callerID, courseID)
	if err != nil {
		return false, nil, err
	}
	return enrolled, course, nil
}

// FreeEnrollment adds a free course to the caller's enrolled set. Calling it
// again changes nothing.
func (s *EnrollmentService) FreeEnrollment(ctx context.Context, callerID, courseID uuid.UUID) (*models.Course, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Paid {
		return nil, ValidationError("This course is paid. Use paid enrollment.")
	}
	if err := s.users.Enroll(ctx, callerID, course.ID); err != nil {
		return nil, err
	}
	return course, nil
}

// PlatformFee is the platform's cut of a sale in cents.
func PlatformFee(amountCents, percent int64) int64 {
	return amountCents * percent / 100
}

// PaidEnrollment opens a checkout session for a paid course and remembers it
// on the caller until the payment is confirmed.
func (s *EnrollmentService) PaidEnrollment(ctx context.Context, callerID, courseID uuid.UUID) (string, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return "", err
	}
	if !course.Paid || course.PriceInCents() == 0 {
		return "", ValidationError("This course is free. Use free enrollment.")
	}

	instructor, err := s.users.FindByID(ctx, course.InstructorID)
	if err != nil {
		return "", PaymentError("Enrollment create failed", err)
	}
	if instructor.StripeAccountID == nil || *instructor.StripeAccountID == "" {
		return "", PaymentError("Instructor cannot receive payments yet", nil)
	}

	amount := course.PriceInCents()
	session, err := s.processor.CreateCheckoutSession(ctx, payments.CheckoutParams{
		ProductName: course.Name,
		AmountCents: amount,
		FeeCents:    PlatformFee(amount, s.cfg.PlatformFeePercent),
		Destination: *instructor.StripeAccountID,
		SuccessURL:  fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.StripeSuccessURL, "/"), course.ID),
		CancelURL:   s.cfg.StripeCancelURL,
		Metadata: map[string]string{
			"user_id":   callerID.String(),
			"course_id": course.ID.String(),
		},
	})
	if err != nil {
		return "", PaymentError("Enrollment create failed", err)
	}

	err = s.users.SavePaymentSession(ctx, callerID, models.PaymentSession{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		CourseID:      course.ID.String(),
	})
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

// PaymentSuccess confirms the caller's pending checkout with the processor
// and grants access once it is paid. Processor failures are logged and
// reported as success=false.
func (s *EnrollmentService) PaymentSuccess(ctx context.Context, callerID, courseID uuid.UUID) (bool, *models.Course, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return false, nil, err
	}

	pending, err := s.users.PaymentSession(ctx, callerID)
	if err != nil {
		return false, nil, err
	}
	if pending == nil || pending.ID == "" {
		return false, course, nil
	}
	if pending.CourseID != "" && pending.CourseID != course.ID.String() {
		return false, course, nil
	}

	session, err := s.processor.RetrieveSession(ctx, pending.ID)
	if err != nil {
		log.Printf("❌ Could not verify checkout session %s: %v", pending.ID, err)
		return false, course, nil
	}
	if session.PaymentStatus != paymentStatusPaid {
		return false, course, nil
	}

	if err := s.grant(ctx, callerID, course.ID, session.ID); err != nil {
		return false, nil, err
	}
	return true, course, nil
}

func (s *EnrollmentService) grant(ctx context.Context, userID, courseID uuid.UUID, sessionID string) error {
	if err := s.users.Enroll(ctx, userID, courseID); err != nil {
		return err
	}
	if _, err := s.users.ClearPaymentSession(ctx, userID, sessionID); err != nil {
		return err
	}
	log.Printf("✅ Payment %s confirmed, user %s enrolled in %s", sessionID, userID, courseID)
	return nil
}

// HandleWebhook applies a signed checkout.session.completed event. Other
// event types are acknowledged and ignored. Replays are harmless.
func (s *EnrollmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.webhooks.ConstructEvent(payload, signature)
	if err != nil {
		return AuthError("Invalid signature")
	}
	if event.Type != payments.EventCheckoutCompleted {
		return nil
	}

	session, err := event.CheckoutSession()
	if err != nil {
		return ValidationError("Invalid event payload")
	}
	if session.PaymentStatus != paymentStatusPaid {
		return nil
	}

	userID, err := uuid.Parse(session.Metadata["user_id"])
	if err != nil {
		return ValidationError("Invalid event metadata")
	}
	courseID, err := uuid.Parse(session.Metadata["course_id"])
	if err != nil {
		return ValidationError("Invalid event metadata")
	}
	if _, err := s.course(ctx, courseID); err != nil {
		return err
	}
	return s.grant(ctx, userID, courseID, session.ID)
}

func (s *EnrollmentService) ListEnrolledCourses(ctx context.Context, callerID uuid.UUID) ([]models.Course, error) {
	return s.courses.ListEnrolled(ctx, callerID)
}
