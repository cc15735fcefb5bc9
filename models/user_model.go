package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleSubscriber = "subscriber"
	RoleInstructor = "instructor"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'subscriber'" json:"role"`

	PasswordResetCode      *string    `gorm:"size:16;index" json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`

	StripeAccountID *string        `gorm:"size:255" json:"stripe_account_id,omitempty"`
	StripeSeller    datatypes.JSON `json:"stripe_seller,omitempty"`
	StripeSession   datatypes.JSON `json:"-"`
	StripeSessionID *string        `gorm:"size:255;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// InstructorSummary is the public projection of a course owner.
type InstructorSummary struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `json:"name"`
}

func (InstructorSummary) TableName() string { return "users" }
