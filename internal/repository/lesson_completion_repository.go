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

// sqlxLessonCompletionRepository implements domain.LessonCompletionRepository
// using sqlx.
type sqlxLessonCompletionRepository struct {
	db *sqlx.DB
}

// NewSQLXLessonCompletionRepository creates a new instance of
// sqlxLessonCompletionRepository.
func NewSQLXLessonCompletionRepository(db *sqlx.DB) domain.LessonCompletionRepository {
	return &sqlxLessonCompletionRepository{db: db}
}

func toDomainLessonCompletion(modelCompletion *models.LessonCompletion) *domain.LessonCompletion {
	if modelCompletion == nil {
		return nil
	}
	var completedAt *time.Time
	if modelCompletion.CompletedAt.Valid {
		completedAt = &modelCompletion.CompletedAt.Time
	}
	return &domain.LessonCompletion{
		ID:          modelCompletion.ID,
		UserID:      modelCompletion.UserID,
		CourseID:    modelCompletion.CourseID,
		LessonID:    modelCompletion.LessonID,
		Completed:   modelCompletion.Completed,
		QuizScore:   util.NullInt64ToIntPtr(modelCompletion.QuizScore),
		CompletedAt: completedAt,
	}
}

// UpsertCompletion inserts a completion row for a (user, course, lesson)
// triple, or overwrites completed, quiz_score and completed_at if the triple
// already exists. The ON CONFLICT clause makes the check-then-act a single
// atomic statement, so two concurrent calls for the same fresh triple still
// converge to exactly one row and the existing row keeps its id.
func (r *sqlxLessonCompletionRepository) UpsertCompletion(ctx context.Context, completion *domain.LessonCompletion) (*domain.LessonCompletion, error) {
	now := time.Now()

	query := `INSERT INTO lesson_completions (user_id, course_id, lesson_id, completed, quiz_score, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id, course_id, lesson_id)
	          DO UPDATE SET completed = EXCLUDED.completed, quiz_score = EXCLUDED.quiz_score, completed_at = EXCLUDED.completed_at
	          RETURNING id, user_id, course_id, lesson_id, completed, quiz_score, completed_at`

	var modelCompletion models.LessonCompletion
	err := r.db.GetContext(ctx, &modelCompletion, query,
		completion.UserID,
		completion.CourseID,
		completion.LessonID,
		completion.Completed,
		util.IntPtrToNullInt64(completion.QuizScore),
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert lesson completion: %w", err)
	}
	return toDomainLessonCompletion(&modelCompletion), nil
}

// GetCompletionsByUserAndCourse retrieves a user's lesson completions for one
// course. No ordering is guaranteed. No rows is an empty slice, not an error.
func (r *sqlxLessonCompletionRepository) GetCompletionsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]domain.LessonCompletion, error) {
	var modelCompletions []models.LessonCompletion
	query := `SELECT id, user_id, course_id, lesson_id, completed, quiz_score, completed_at
	          FROM lesson_completions
	          WHERE user_id = $1 AND course_id = $2`

	if err := r.db.SelectContext(ctx, &modelCompletions, query, userID, courseID); err != nil {
		return nil, fmt.Errorf("failed to get lesson completions by user and course: %w", err)
	}

	domainCompletions := make([]domain.LessonCompletion, len(modelCompletions))
	for i := range modelCompletions {
		domainCompletions[i] = *toDomainLessonCompletion(&modelCompletions[i])
	}
	return domainCompletions, nil
}
