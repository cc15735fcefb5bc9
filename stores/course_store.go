package stores

import (
	"context"

	"github.com/anjiri1684/course_market/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

func orderedLessons(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func instructorSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

// withDetails loads the instructor id+name and the lessons in order.
func (s *CourseStore) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Instructor", instructorSummary).
		Preload("Lessons", orderedLessons)
}

func (s *CourseStore) Create(ctx context.Context, course *models.Course) error {
	if err := s.db.WithContext(ctx).Omit("Lessons", "Instructor").Create(course).Error; err != nil {
		return errors.Wrap(translate(err), "create course")
	}
	return nil
}

func (s *CourseStore) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var course models.Course
	if err := s.withDetails(ctx).Where("slug = ?", slug).First(&course).Error; err != nil {
		return nil, errors.Wrap(translate(err), "find course by slug")
	}
	return &course, nil
}

func (s *CourseStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := s.withDetails(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, errors.Wrap(translate(err), "find course by id")
	}
	return &course, nil
}

// SlugTaken reports whether a course other than exclude already uses slug.
func (s *CourseStore) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Course{}).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check course slug")
	}
	return count > 0, nil
}

// UpdateDetails writes the given course columns. Owner and lessons are never
// touched here.
func (s *CourseStore) UpdateDetails(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return errors.Wrap(translate(res.Error), "update course")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "update course")
	}
	return nil
}

func (s *CourseStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	res := s.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Update("published", published)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set published")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "set published")
	}
	return nil
}

// AddLesson appends lesson after the course's current last lesson.
func (s *CourseStore) AddLesson(ctx context.Context, courseID uuid.UUID, lesson *models.Lesson) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&models.Lesson{}).
			Where("course_id = ?", courseID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error
		if err != nil {
			return errors.Wrap(err, "find last lesson position")
		}
		lesson.CourseID = courseID
		lesson.Position = last + 1
		if err := tx.Create(lesson).Error; err != nil {
			return errors.Wrap(translate(err), "add lesson")
		}
		return nil
	})
}

// UpdateLesson writes the given columns of a lesson that belongs to courseID
// and returns the stored lesson.
func (s *CourseStore) UpdateLesson(ctx context.Context, courseID, lessonID uuid.UUID, changes map[string]interface{}) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Lesson{}).
			Where("id = ? AND course_id = ?", lessonID, courseID).
			Updates(changes)
		if res.Error != nil {
			return errors.Wrap(res.Error, "update lesson")
		}
		if res.RowsAffected == 0 {
			return errors.Wrap(ErrNotFound, "update lesson")
		}
		return errors.Wrap(tx.Where("id = ?", lessonID).Take(&lesson).Error, "load lesson")
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// RemoveLesson deletes a lesson of courseID. Removing a lesson that is not
// there is not an error.
func (s *CourseStore) RemoveLesson(ctx context.Context, courseID, lessonID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", lessonID, courseID).
		Delete(&models.Lesson{}).Error
	return errors.Wrap(err, "remove lesson")
}

func (s *CourseStore) ListPublished(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Preload("Instructor", instructorSummary).
		Where("published = ?", true).
		Order("created_at desc").
		Find(&courses).Error
	return courses, errors.Wrap(err, "list published courses")
}

func (s *CourseStore) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&courses).Error
	return courses, errors.Wrap(err, "list instructor courses")
}

// ListEnrolled returns the courses in the user's enrolled set with their
// lessons.
func (s *CourseStore) ListEnrolled(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := s.withDetails(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at asc").
		Find(&courses).Error
	return courses, errors.Wrap(err, "list enrolled courses")
}
