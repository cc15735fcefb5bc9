package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/stores"
	"github.com/anjiri1684/course_market/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

type CourseService struct {
	courses *stores.CourseStore
	videos  VideoStorage
	images  ImageHost
}

func NewCourseService(courses *stores.CourseStore, videos VideoStorage, images ImageHost) *CourseService {
	return &CourseService{courses: courses, videos: videos, images: images}
}

// CourseInput carries course fields. On update a nil field, or an empty
// Name, leaves the stored value alone.
type CourseInput struct {
	Name        string
	Description *string
	Category    *string
	Price       *float64
	Image       *models.Image
}

// LessonInput carries lesson fields. On update a nil field, or an empty
// Title, leaves the stored value alone.
type LessonInput struct {
	Title       string
	Content     *string
	Video       *models.Video
	FreePreview *bool
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode json column")
	}
	return datatypes.JSON(raw), nil
}

// reservedSlugs are the fixed path segments under /course.
var reservedSlugs = map[string]bool{
	"publish":      true,
	"unpublish":    true,
	"lesson":       true,
	"upload-image": true,
	"video-upload": true,
	"remove-video": true,
}

// slugFor returns the slug for a course name, or a ValidationError when the
// name has nothing to build one from.
func slugFor(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ValidationError(MsgNameRequired)
	}
	slug := utils.Slugify(strings.ToLower(name))
	if slug == "" {
		return "", ValidationError("Name must contain letters or digits")
	}
	if reservedSlugs[slug] {
		return "", ConflictError(MsgTitleTaken)
	}
	return slug, nil
}

// isPaid reports whether price is above zero once stored with two decimals.
func isPaid(price *float64) bool {
	return (&models.Course{Price: price}).PriceInCents() > 0
}

func checkPrice(price *float64) error {
	if price != nil && *price < 0 {
		return ValidationError("Price cannot be negative")
	}
	return nil
}

// courseChanges collects the columns an update writes.
func courseChanges(in CourseInput) (map[string]interface{}, error) {
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}
	changes := map[string]interface{}{}
	if name := strings.TrimSpace(in.Name); name != "" {
		changes["name"] = name
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Category != nil {
		changes["category"] = *in.Category
	}
	if in.Price != nil {
		changes["price"] = *in.Price
		changes["paid"] = isPaid(in.Price)
	}
	if in.Image != nil {
		image, err := toJSON(in.Image)
		if err != nil {
			return nil, err
		}
		changes["image"] = image
	}
	return changes, nil
}

func (s *CourseService) Create(ctx context.Context, callerID uuid.UUID, in CourseInput) (*models.Course, error) {
	slug, err := slugFor(in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	taken, err := s.courses.SlugTaken(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError(MsgTitleTaken)
	}

	course := &models.Course{
		Name:         strings.TrimSpace(in.Name),
		Slug:         slug,
		Price:        in.Price,
		Paid:         isPaid(in.Price),
		InstructorID: callerID,
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Category != nil {
		course.Category = *in.Category
	}
	if in.Image != nil {
		image, err := toJSON(in.Image)
		if err != nil {
			return nil, err
		}
		course.Image = image
	}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, ConflictError(MsgTitleTaken)
		}
		return nil, err
	}
	return course, nil
}

// ownedBySlug loads a course and applies the ownership rule.
func (s *CourseService) ownedBySlug(ctx context.Context, slug string, callerID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindBySlug(ctx, slug)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgCourseNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !IsOwner(callerID, course) {
		return nil, AuthError(MsgUnauthorized)
	}
	return course, nil
}

func (s *CourseService) ownedByID(ctx context.Context, courseID, callerID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgCourseNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !IsOwner(callerID, course) {
		return nil, AuthError(MsgUnauthorized)
	}
	return course, nil
}

// Update writes only the fields present in in. A new name also moves the
// slug.
func (s *CourseService) Update(ctx context.Context, slug string, callerID uuid.UUID, in CourseInput) (*models.Course, error) {
	course, err := s.ownedBySlug(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}

	changes, err := courseChanges(in)
	if err != nil {
		return nil, err
	}
	if _, ok := changes["name"]; ok {
		newSlug, err := slugFor(in.Name)
		if err != nil {
			return nil, err
		}
		if newSlug != course.Slug {
			taken, err := s.courses.SlugTaken(ctx, newSlug, course.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ConflictError(MsgTitleTaken)
			}
			changes["slug"] = newSlug
		}
	}

	if len(changes) == 0 {
		return course, nil
	}
	if err := s.courses.UpdateDetails(ctx, course.ID, changes); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, ConflictError(MsgTitleTaken)
		}
		return nil, err
	}
	return s.courses.FindByID(ctx, course.ID)
}

func newLesson(in LessonInput) (*models.Lesson, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ValidationError("Title is required")
	}
	lesson := &models.Lesson{Title: title, Slug: utils.Slugify(title)}
	if in.Content != nil {
		lesson.Content = *in.Content
	}
	if in.FreePreview != nil {
		lesson.FreePreview = *in.FreePreview
	}
	if in.Video != nil {
		video, err := toJSON(in.Video)
		if err != nil {
			return nil, err
		}
		lesson.Video = video
	}
	return lesson, nil
}

func lessonChanges(in LessonInput) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if title := strings.TrimSpace(in.Title); title != "" {
		changes["title"] = title
		changes["slug"] = utils.Slugify(title)
	}
	if in.Content != nil {
		changes["content"] = *in.Content
	}
	if in.FreePreview != nil {
		changes["free_preview"] = *in.FreePreview
	}
	if in.Video != nil {
		video, err := toJSON(in.Video)
		if err != nil {
			return nil, err
		}
		changes["video"] = video
	}
	return changes, nil
}

// AddLesson appends a lesson. The instructor id in the request path must be
// the caller, and the caller must own the course.
func (s *CourseService) AddLesson(ctx context.Context, slug string, instructorID, callerID uuid.UUID, in LessonInput) (*models.Course, error) {
	if instructorID != callerID {
		return nil, AuthError(MsgUnauthorized)
	}
	course, err := s.ownedBySlug(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}

	lesson, err := newLesson(in)
	if err != nil {
		return nil, err
	}
	if err := s.courses.AddLesson(ctx, course.ID, lesson); err != nil {
		return nil, err
	}
	return s.courses.FindByID(ctx, course.ID)
}

func (s *CourseService) UpdateLesson(ctx context.Context, slug string, callerID, lessonID uuid.UUID, in LessonInput) (*models.Lesson, error) {
	course, err := s.ownedBySlug(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}

	changes, err := lessonChanges(in)
	if err != nil {
		return nil, err
	}
	lesson, err := s.courses.UpdateLesson(ctx, course.ID, lessonID, changes)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgLessonNotFound)
	}
	return lesson, err
}

func (s *CourseService) RemoveLesson(ctx context.Context, slug string, lessonID, callerID uuid.UUID) (*models.Course, error) {
	course, err := s.ownedBySlug(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.courses.RemoveLesson(ctx, course.ID, lessonID); err != nil {
		return nil, err
	}
	return s.courses.FindByID(ctx, course.ID)
}

func (s *CourseService) setPublished(ctx context.Context, courseID, callerID uuid.UUID, published bool) (*models.Course, error) {
	course, err := s.ownedByID(ctx, courseID, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.courses.SetPublished(ctx, course.ID, published); err != nil {
		return nil, err
	}
	course.Published = published
	return course, nil
}

func (s *CourseService) Publish(ctx context.Context, courseID, callerID uuid.UUID) (*models.Course, error) {
	return s.setPublished(ctx, courseID, callerID, true)
}

func (s *CourseService) Unpublish(ctx context.Context, courseID, callerID uuid.UUID) (*models.Course, error) {
	return s.setPublished(ctx, courseID, callerID, false)
}

func (s *CourseService) UploadImage(ctx context.Context, base64Image string) (*models.Image, error) {
	if strings.TrimSpace(base64Image) == "" {
		return nil, ValidationError(MsgNoImage)
	}
	image, err := s.images.UploadImage(ctx, base64Image)
	if err != nil {
		return nil, ExternalError("Image upload failed. Try again.", err)
	}
	return image, nil
}

// UploadVideo stores a lesson video for the instructor named in the path,
// who must be the caller.
func (s *CourseService) UploadVideo(ctx context.Context, instructorID, callerID uuid.UUID, file interface{}) (*models.Video, error) {
	if instructorID != callerID {
		return nil, AuthError(MsgUnauthorized)
	}
	if file == nil {
		return nil, ValidationError("No video")
	}
	video, err := s.videos.UploadVideo(ctx, file)
	if err != nil {
		return nil, ExternalError("Video upload failed. Try again.", err)
	}
	return video, nil
}

func (s *CourseService) RemoveVideo(ctx context.Context, courseID, callerID uuid.UUID, video models.Video) error {
	if _, err := s.ownedByID(ctx, courseID, callerID); err != nil {
		return err
	}
	if video.PublicID == "" {
		return ValidationError("No video")
	}
	if err := s.videos.DeleteVideo(ctx, video.PublicID); err != nil {
		return ExternalError("Video remove failed. Try again.", err)
	}
	return nil
}

func (s *CourseService) ListPublished(ctx context.Context) ([]models.Course, error) {
	return s.courses.ListPublished(ctx)
}

func (s *CourseService) Read(ctx context.Context, slug string) (*models.Course, error) {
	course, err := s.courses.FindBySlug(ctx, slug)
	if errors.Is(err, stores.ErrNotFound) {
		return nil, NotFoundError(MsgCourseNotFound)
	}
	return course, err
}
