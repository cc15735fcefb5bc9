package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:320;not null" json:"name"`
	Slug        string         `gorm:"size:320;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Image       datatypes.JSON `json:"image,omitempty"`
	Category    string         `gorm:"size:100" json:"category"`
	Price       *float64       `gorm:"type:numeric(10,2)" json:"price"`
	Paid        bool           `gorm:"not null;default:false" json:"paid"`
	Published   bool           `gorm:"not null;default:false" json:"published"`

	InstructorID uuid.UUID          `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor   *InstructorSummary `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Lessons      []Lesson           `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"lessons"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PriceInCents is zero for free courses.
func (c *Course) PriceInCents() int64 {
	if c.Price == nil || *c.Price <= 0 {
		return 0
	}
	return int64(*c.Price*100 + 0.5)
}

type Lesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Position    int            `gorm:"not null;default:0" json:"position"`
	Title       string         `gorm:"size:320;not null" json:"title"`
	Slug        string         `gorm:"size:320" json:"slug"`
	Content     string         `gorm:"type:text" json:"content"`
	Video       datatypes.JSON `json:"video,omitempty"`
	FreePreview bool           `gorm:"not null;default:false" json:"free_preview"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Video is what the media store hands back for an uploaded lesson video.
type Video struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

type Image struct {
	DisplayURL string `json:"display_url"`
	DeleteURL  string `json:"delete_url"`
}
