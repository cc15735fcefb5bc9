package stores

import (
	"context"

	"github.com/anjiri1684/course_market/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionStore keeps one completion record per (user, course) holding the
// set of lessons the user finished.
type CompletionStore struct {
	db *gorm.DB
}

func NewCompletionStore(db *gorm.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

// record returns the completion id for (userID, courseID), creating the
// record when create is set. It returns uuid.Nil if there is none.
func record(tx *gorm.DB, userID, courseID uuid.UUID, create bool) (uuid.UUID, error) {
	if create {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&models.Completion{UserID: userID, CourseID: courseID}).Error
		if err != nil {
			return uuid.Nil, errors.Wrap(err, "create completion record")
		}
	}

	var completion models.Completion
	err := tx.Select("id").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Take(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "find completion record")
	}
	return completion.ID, nil
}

func (s *CompletionStore) MarkCompleted(ctx context.Context, userID, courseID, lessonID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := record(tx, userID, courseID, true)
		if err != nil {
			return err
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.CompletedLesson{CompletionID: id, LessonID: lessonID}).Error
		return errors.Wrap(err, "mark lesson completed")
	})
}

// MarkIncomplete removes lessonID from the set. It is a no-op when the user
// has no record for the course.
func (s *CompletionStore) MarkIncomplete(ctx context.Context, userID, courseID, lessonID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := record(tx, userID, courseID, false)
		if err != nil || id == uuid.Nil {
			return err
		}
		err = tx.Where("completion_id = ? AND lesson_id = ?", id, lessonID).
			Delete(&models.CompletedLesson{}).Error
		return errors.Wrap(err, "mark lesson incomplete")
	})
}

// ListCompleted returns the completed lesson ids, empty when there is no record.
func (s *CompletionStore) ListCompleted(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.db.WithContext(ctx).Model(&models.CompletedLesson{}).
		Joins("JOIN completions ON completions.id = completed_lessons.completion_id").
		Where("completions.user_id = ? AND completions.course_id = ?", userID, courseID).
		Order("completed_lessons.created_at asc").
		Pluck("completed_lessons.lesson_id", &ids).Error
	return ids, errors.Wrap(err, "list completed lessons")
}
