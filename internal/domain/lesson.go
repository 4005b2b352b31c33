package domain

import (
	"context"
	"time"
)

// LessonCompletion represents one mutable record per (user, course, lesson)
// triple. The first completion signal creates the row; later signals for the
// same triple overwrite completed, quiz_score and completed_at in place.
// At most one row exists per triple, enforced by a unique index and the
// atomic upsert in the repository.
type LessonCompletion struct {
	ID          int64
	UserID      int64
	CourseID    string
	LessonID    string
	Completed   bool
	QuizScore   *int
	CompletedAt *time.Time
}

// LessonCompletionRepository defines the interface for lesson completion
// persistence. UpsertCompletion must be atomic with respect to concurrent
// calls for the same triple.
type LessonCompletionRepository interface {
	UpsertCompletion(ctx context.Context, completion *LessonCompletion) (*LessonCompletion, error)
	GetCompletionsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]LessonCompletion, error)
}
