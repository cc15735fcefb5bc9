package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, int64(3000), services.PlatformFee(10000, 30))
	assert.Equal(t, int64(899), services.PlatformFee(2999, 30))
	assert.Equal(t, int64(0), services.PlatformFee(0, 30))
}

func TestFreeEnrollmentIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.instructor(t, "ada@example.com")
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	course, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Intro to X", Price: price(0)})
	require.NoError(t, err)

	enrolled, _, err := e.enrollment.CheckEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	for i := 0; i < 2; i++ {
		got, err := e.enrollment.FreeEnrollment(ctx, student.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, course.ID, got.ID)
	}

	ids, err := e.users.EnrolledCourseIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{course.ID}, ids)

	enrolled, _, err = e.enrollment.CheckEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	courses, err := e.enrollment.ListEnrolledCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
}

func TestEnrollmentRejectsWrongKind(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.instructor(t, "ada@example.com")
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	free, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Free"})
	require.NoError(t, err)
	paid, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Paid", Price: price(10)})
	require.NoError(t, err)

	_, err = e.enrollment.FreeEnrollment(ctx, student.ID, paid.ID)
	requireKind(t, err, services.KindValidation)

	_, err = e.enrollment.PaidEnrollment(ctx, student.ID, free.ID)
	requireKind(t, err, services.KindValidation)

	_, err = e.enrollment.FreeEnrollment(ctx, student.ID, uuid.New())
	requireKind(t, err, services.KindNotFound)
}

func TestPaidEnrollmentNeedsConnectedAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "ada@example.com", models.RoleInstructor)
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	course, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Paid", Price: price(10)})
	require.NoError(t, err)

	_, err = e.enrollment.PaidEnrollment(ctx, student.ID, course.ID)
	requireKind(t, err, services.KindPayment)
}

func TestPaymentSuccessIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.instructor(t, "ada@example.com")
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	course, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Paid", Price: price(100)})
	require.NoError(t, err)

	ok, _, err := e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	sessionID, err := e.enrollment.PaidEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, e.processor.checkouts, 1)
	params := e.processor.checkouts[0]
	assert.Equal(t, int64(10000), params.AmountCents)
	assert.Equal(t, int64(3000), params.FeeCents)
	assert.Equal(t, "acct_"+owner.ID.String()[:8], params.Destination)
	assert.Equal(t, fmt.Sprintf("http://localhost:3000/stripe/success/%s", course.ID), params.SuccessURL)
	assert.Equal(t, student.ID.String(), params.Metadata["user_id"])

	ok, _, err = e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, ok, "unpaid session must not grant access")

	e.processor.pay(sessionID)
	ok, got, err := e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, course.ID, got.ID)

	ok, _, err = e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := e.users.EnrolledCourseIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{course.ID}, ids)
}

func TestPaymentSuccessSwallowsProcessorErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.instructor(t, "ada@example.com")
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	course, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Paid", Price: price(5)})
	require.NoError(t, err)
	_, err = e.enrollment.PaidEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)

	e.processor.retrieveErr = errors.New("stripe unavailable")
	ok, _, err := e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	enrolled, err := e.users.IsEnrolled(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestWebhookGrantsAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.instructor(t, "ada@example.com")
	student := e.user(t, "bob@example.com", models.RoleSubscriber)
	course, err := e.course.Create(ctx, owner.ID, services.CourseInput{Name: "Paid", Price: price(5)})
	require.NoError(t, err)
	sessionID, err := e.enrollment.PaidEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)

	payload := []byte(fmt.Sprintf(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":%q,"payment_status":"paid","metadata":{"user_id":%q,"course_id":%q}}}}`,
		sessionID, student.ID, course.ID))
	header := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    webhookSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	}).Header

	err = e.enrollment.HandleWebhook(ctx, payload, "t=1,v1=00")
	requireKind(t, err, services.KindAuth)

	require.NoError(t, e.enrollment.HandleWebhook(ctx, payload, header))
	require.NoError(t, e.enrollment.HandleWebhook(ctx, payload, header))

	enrolled, err := e.users.IsEnrolled(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	pending, err := e.users.PaymentSession(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	ok, _, err := e.enrollment.PaymentSuccess(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
