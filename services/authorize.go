package services

import (
	"github.com/anjiri1684/course_market/models"
	"github.com/google/uuid"
)

// IsOwner is the one ownership rule for courses: only the instructor who
// created a course may change it or its lessons.
func IsOwner(callerID uuid.UUID, course *models.Course) bool {
	return course != nil && callerID != uuid.Nil && course.InstructorID == callerID
}
