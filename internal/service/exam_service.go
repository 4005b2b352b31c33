package service

import (
	"context"
	"fmt"
	"time"

	"educhat-backend/internal/domain"
	"educhat-backend/internal/dto"
)

// ExamService defines the interface for exam result operations. Every
// operation takes the authenticated caller's user id explicitly; the service
// never derives identity from ambient state.
type ExamService interface {
	SubmitResult(ctx context.Context, userID int64, req *dto.SubmitExamResultRequest) (*dto.ExamResultResponse, error)
	GetMyResults(ctx context.Context, userID int64) ([]dto.ExamResultResponse, error)
	GetCourseResults(ctx context.Context, userID int64, courseID string) ([]dto.ExamResultResponse, error)
}

type examServiceImpl struct {
	resultRepo domain.ExamResultRepository
}

// NewExamService creates a new instance of ExamService.
func NewExamService(resultRepo domain.ExamResultRepository) ExamService {
	return &examServiceImpl{resultRepo: resultRepo}
}

// SubmitResult always inserts a new row; repeated submissions for the same
// exam accumulate history. Numeric fields and the passed flag are stored as
// supplied, with no cross-validation of score against percentage. Course and
// exam identifiers are opaque tokens and are stored as-is, empty strings
// included.
func (s *examServiceImpl) SubmitResult(ctx context.Context, userID int64, req *dto.SubmitExamResultRequest) (*dto.ExamResultResponse, error) {
	result := &domain.ExamResult{
		UserID:      userID,
		CourseID:    req.CourseID,
		ExamTitle:   req.ExamTitle,
		Score:       req.Score,
		TotalPoints: req.TotalPoints,
		Percentage:  req.Percentage,
		Passed:      req.Passed,
		TimeTaken:   req.TimeTaken,
		Answers:     req.Answers,
		CompletedAt: time.Now(),
	}

	created, err := s.resultRepo.CreateResult(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to create exam result in repository: %w", err)
	}
	return toExamResultResponse(created), nil
}

// GetMyResults returns all of the caller's exam results, most recent first.
func (s *examServiceImpl) GetMyResults(ctx context.Context, userID int64) ([]dto.ExamResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam results from repository: %w", err)
	}
	return toExamResultResponses(results), nil
}

// GetCourseResults returns the caller's exam results for one course, most
// recent first. A course with no results yields an empty list.
func (s *examServiceImpl) GetCourseResults(ctx context.Context, userID int64, courseID string) ([]dto.ExamResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course exam results from repository: %w", err)
	}
	return toExamResultResponses(results), nil
}

func toExamResultResponse(result *domain.ExamResult) *dto.ExamResultResponse {
	return &dto.ExamResultResponse{
		ID:          result.ID,
		UserID:      result.UserID,
		CourseID:    result.CourseID,
		ExamTitle:   result.ExamTitle,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
		Percentage:  result.Percentage,
		Passed:      result.Passed,
		CompletedAt: result.CompletedAt,
	}
}

func toExamResultResponses(results []domain.ExamResult) []dto.ExamResultResponse {
	responses := make([]dto.ExamResultResponse, len(results))
	for i := range results {
		responses[i] = *toExamResultResponse(&results[i])
	}
	return responses
}
