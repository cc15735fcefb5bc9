package stores

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anjiri1684/course_market/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(translate(err), "create user")
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, errors.Wrap(translate(err), "find user by id")
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(translate(err), "find user by email")
	}
	return &user, nil
}

func (s *UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users by email")
	}
	return count > 0, nil
}

// SetResetCode stores code on the user with that email. It reports false when
// no such user exists.
func (s *UserStore) SetResetCode(ctx context.Context, email, code string, expiresAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_reset_code":       code,
			"password_reset_expires_at": expiresAt,
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "set reset code")
	}
	return res.RowsAffected > 0, nil
}

// ConsumeResetCode swaps the password hash and clears the code in a single
// UPDATE guarded by email, code and expiry, so a code works at most once.
func (s *UserStore) ConsumeResetCode(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND password_reset_code = ? AND password_reset_expires_at > ?", email, code, now).
		Updates(map[string]interface{}{
			"password":                  passwordHash,
			"password_reset_code":       gorm.Expr("NULL"),
			"password_reset_expires_at": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "consume reset code")
	}
	return res.RowsAffected > 0, nil
}

func (s *UserStore) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("password_reset_code IS NOT NULL AND password_reset_expires_at <= ?", now).
		Updates(map[string]interface{}{
			"password_reset_code":       gorm.Expr("NULL"),
			"password_reset_expires_at": gorm.Expr("NULL"),
		})
	return res.RowsAffected, errors.Wrap(res.Error, "clear expired reset codes")
}

func (s *UserStore) SetStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("stripe_account_id", accountID).Error
	return errors.Wrap(err, "set stripe account")
}

// PromoteToInstructor records the connected account snapshot and grants the
// instructor role.
func (s *UserStore) PromoteToInstructor(ctx context.Context, id uuid.UUID, seller datatypes.JSON) (*models.User, error) {
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stripe_seller": seller,
			"role":          models.RoleInstructor,
		}).Error
	if err != nil {
		return nil, errors.Wrap(err, "promote to instructor")
	}
	return s.FindByID(ctx, id)
}

func (s *UserStore) SavePaymentSession(ctx context.Context, id uuid.UUID, session models.PaymentSession) error {
	snapshot, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "encode payment session")
	}
	err = s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stripe_session":    datatypes.JSON(snapshot),
			"stripe_session_id": session.ID,
		}).Error
	return errors.Wrap(err, "save payment session")
}

// PaymentSession returns the caller's pending checkout snapshot, or nil.
func (s *UserStore) PaymentSession(ctx context.Context, id uuid.UUID) (*models.PaymentSession, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(user.StripeSession) == 0 || string(user.StripeSession) == "null" {
		return nil, nil
	}
	var session models.PaymentSession
	if err := json.Unmarshal(user.StripeSession, &session); err != nil {
		return nil, errors.Wrap(err, "decode payment session")
	}
	return &session, nil
}

// ClearPaymentSession drops the snapshot only if it still belongs to
// sessionID. It reports whether this call cleared it.
func (s *UserStore) ClearPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND stripe_session_id = ?", id, sessionID).
		Updates(map[string]interface{}{
			"stripe_session":    gorm.Expr("NULL"),
			"stripe_session_id": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "clear payment session")
	}
	return res.RowsAffected > 0, nil
}

// ClearStalePaymentSessions drops snapshots nobody came back for.
func (s *UserStore) ClearStalePaymentSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("stripe_session_id IS NOT NULL AND updated_at < ?", olderThan).
		Updates(map[string]interface{}{
			"stripe_session":    gorm.Expr("NULL"),
			"stripe_session_id": gorm.Expr("NULL"),
		})
	return res.RowsAffected, errors.Wrap(res.Error, "clear stale payment sessions")
}

// Enroll adds courseID to the user's enrolled set. Enrolling twice is a no-op.
func (s *UserStore) Enroll(ctx context.Context, userID, courseID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error
	return errors.Wrap(err, "enroll")
}

func (s *UserStore) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check enrollment")
	}
	return count > 0, nil
}

func (s *UserStore) EnrolledCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("course_id", &ids).Error
	return ids, errors.Wrap(err, "list enrolled course ids")
}
