package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment rows form each user's set of enrolled courses.
type Enrollment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
