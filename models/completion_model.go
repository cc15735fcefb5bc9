package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Completion struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_course" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_course" json:"course_id"`

	Lessons []CompletedLesson `gorm:"foreignKey:CompletionID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CompletedLesson struct {
	CompletionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	LessonID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	CreatedAt    time.Time `json:"created_at"`
}
