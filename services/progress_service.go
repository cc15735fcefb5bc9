package services

import (
	"context"

	"github.com/anjiri1684/course_market/stores"
	"github.com/google/uuid"
)

type ProgressService struct {
	completions *stores.CompletionStore
}

func NewProgressService(completions *stores.CompletionStore) *ProgressService {
	return &ProgressService{completions: completions}
}

func (s *ProgressService) MarkCompleted(ctx context.Context, callerID, courseID, lessonID uuid.UUID) error {
	return s.completions.MarkCompleted(ctx, callerID, courseID, lessonID)
}

func (s *ProgressService) MarkIncomplete(ctx context.Context, callerID, courseID, lessonID uuid.UUID) error {
	return s.completions.MarkIncomplete(ctx, callerID, courseID, lessonID)
}

func (s *ProgressService) ListCompleted(ctx context.Context, callerID, courseID uuid.UUID) ([]uuid.UUID, error) {
	return s.completions.ListCompleted(ctx, callerID, courseID)
}
