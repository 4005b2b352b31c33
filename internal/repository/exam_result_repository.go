package repository

import (
	"context"
	"fmt"
	"time"

	"educhat-backend/internal/domain"
	"educhat-backend/internal/repository/models"
	"educhat-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxExamResultRepository implements domain.ExamResultRepository using sqlx.
type sqlxExamResultRepository struct {
	db *sqlx.DB
}

// NewSQLXExamResultRepository creates a new instance of sqlxExamResultRepository.
func NewSQLXExamResultRepository(db *sqlx.DB) domain.ExamResultRepository {
	return &sqlxExamResultRepository{db: db}
}

func toDomainExamResult(modelResult *models.ExamResult) *domain.ExamResult {
	if modelResult == nil {
		return nil
	}
	var answers map[string]interface{}
	if modelResult.Answers != nil {
		answers = modelResult.Answers
	}
	return &domain.ExamResult{
		ID:          modelResult.ID,
		UserID:      modelResult.UserID,
		CourseID:    modelResult.CourseID,
		ExamTitle:   modelResult.ExamTitle,
		Score:       modelResult.Score,
		TotalPoints: modelResult.TotalPoints,
		Percentage:  modelResult.Percentage,
		Passed:      modelResult.Passed != 0, // stored as 0/1
		TimeTaken:   util.NullInt64ToIntPtr(modelResult.TimeTaken),
		Answers:     answers,
		CompletedAt: modelResult.CompletedAt,
	}
}

func fromDomainExamResult(domainResult *domain.ExamResult) *models.ExamResult {
	if domainResult == nil {
		return nil
	}
	passed := 0
	if domainResult.Passed {
		passed = 1
	}
	var answers models.JSONMap
	if domainResult.Answers != nil {
		answers = models.JSONMap(domainResult.Answers)
	}
	return &models.ExamResult{
		ID:          domainResult.ID,
		UserID:      domainResult.UserID,
		CourseID:    domainResult.CourseID,
		ExamTitle:   domainResult.ExamTitle,
		Score:       domainResult.Score,
		TotalPoints: domainResult.TotalPoints,
		Percentage:  domainResult.Percentage,
		Passed:      passed,
		TimeTaken:   util.IntPtrToNullInt64(domainResult.TimeTaken),
		Answers:     answers,
		CompletedAt: domainResult.CompletedAt,
	}
}

// CreateResult inserts a new exam result row. Results are append-only; every
// submission produces a fresh row regardless of prior attempts for the same
// exam.
func (r *sqlxExamResultRepository) CreateResult(ctx context.Context, domainResult *domain.ExamResult) (*domain.ExamResult, error) {
	modelResult := fromDomainExamResult(domainResult)
	if modelResult.CompletedAt.IsZero() {
		modelResult.CompletedAt = time.Now()
	}

	query := `INSERT INTO exam_results (user_id, course_id, exam_title, score, total_points, percentage, passed, time_taken, answers, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		modelResult.UserID,
		modelResult.CourseID,
		modelResult.ExamTitle,
		modelResult.Score,
		modelResult.TotalPoints,
		modelResult.Percentage,
		modelResult.Passed,
		modelResult.TimeTaken,
		modelResult.Answers,
		modelResult.CompletedAt,
	).Scan(&modelResult.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create exam result: %w", err)
	}
	return toDomainExamResult(modelResult), nil
}

// GetResultsByUserID retrieves all exam results owned by a user, most recent
// first.
func (r *sqlxExamResultRepository) GetResultsByUserID(ctx context.Context, userID int64) ([]domain.ExamResult, error) {
	var modelResults []models.ExamResult
	query := `SELECT id, user_id, course_id, exam_title, score, total_points, percentage, passed, time_taken, answers, completed_at
	          FROM exam_results
	          WHERE user_id = $1
	          ORDER BY completed_at DESC`

	if err := r.db.SelectContext(ctx, &modelResults, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get exam results by user id: %w", err)
	}
	return toDomainExamResults(modelResults), nil
}

// GetResultsByUserAndCourse retrieves a user's exam results for one course,
// most recent first. No rows is an empty slice, not an error.
func (r *sqlxExamResultRepository) GetResultsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]domain.ExamResult, error) {
	var modelResults []models.ExamResult
	query := `SELECT id, user_id, course_id, exam_title, score, total_points, percentage, passed, time_taken, answers, completed_at
	          FROM exam_results
	          WHERE user_id = $1 AND course_id = $2
	          ORDER BY completed_at DESC`

	if err := r.db.SelectContext(ctx, &modelResults, query, userID, courseID); err != nil {
		return nil, fmt.Errorf("failed to get exam results by user and course: %w", err)
	}
	return toDomainExamResults(modelResults), nil
}

func toDomainExamResults(modelResults []models.ExamResult) []domain.ExamResult {
	domainResults := make([]domain.ExamResult, len(modelResults))
	for i := range modelResults {
		domainResults[i] = *toDomainExamResult(&modelResults[i])
	}
	return domainResults
}
