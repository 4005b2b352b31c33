package service

import (
	"context"
	"fmt"

	"educhat-backend/internal/domain"
	"educhat-backend/internal/dto"
)

// LessonService defines the interface for lesson completion operations.
type LessonService interface {
	CompleteLesson(ctx context.Context, userID int64, req *dto.CompleteLessonRequest) (*dto.LessonCompletionResponse, error)
	GetCourseProgress(ctx context.Context, userID int64, courseID string) ([]dto.LessonCompletionResponse, error)
}

type lessonServiceImpl struct {
	completionRepo domain.LessonCompletionRepository
}

// NewLessonService creates a new instance of LessonService.
func NewLessonService(completionRepo domain.LessonCompletionRepository) LessonService {
	return &lessonServiceImpl{completionRepo: completionRepo}
}

// CompleteLesson upserts the completion row for the caller's
// (course, lesson) pair. Completed defaults to true when omitted; the
// supplied completed flag and quiz_score overwrite whatever the row held
// before, and completed_at is refreshed on every call. The row id is stable
// across repeated completions of the same lesson. Course and lesson
// identifiers are opaque tokens and are stored as-is, empty strings
// included; an empty pair is a distinct triple like any other.
func (s *lessonServiceImpl) CompleteLesson(ctx context.Context, userID int64, req *dto.CompleteLessonRequest) (*dto.LessonCompletionResponse, error) {
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	completion := &domain.LessonCompletion{
		UserID:    userID,
		CourseID:  req.CourseID,
		LessonID:  req.LessonID,
		Completed: completed,
		QuizScore: req.QuizScore,
	}

	upserted, err := s.completionRepo.UpsertCompletion(ctx, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert lesson completion in repository: %w", err)
	}
	return toLessonCompletionResponse(upserted), nil
}

// GetCourseProgress returns the caller's lesson completions for one course.
// No ordering is guaranteed; a course with no completions yields an empty
// list.
func (s *lessonServiceImpl) GetCourseProgress(ctx context.Context, userID int64, courseID string) ([]dto.LessonCompletionResponse, error) {
	completions, err := s.completionRepo.GetCompletionsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson completions from repository: %w", err)
	}

	responses := make([]dto.LessonCompletionResponse, len(completions))
	for i := range completions {
		responses[i] = *toLessonCompletionResponse(&completions[i])
	}
	return responses, nil
}

func toLessonCompletionResponse(completion *domain.LessonCompletion) *dto.LessonCompletionResponse {
	return &dto.LessonCompletionResponse{
		ID:          completion.ID,
		UserID:      completion.UserID,
		CourseID:    completion.CourseID,
		LessonID:    completion.LessonID,
		Completed:   completion.Completed,
		QuizScore:   completion.QuizScore,
		CompletedAt: completion.CompletedAt,
	}
}
