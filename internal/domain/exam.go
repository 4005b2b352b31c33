package domain

import (
	"context"
	"time"
)

// ExamResult represents one immutable record per exam submission. Rows are
// append-only: repeated submissions for the same exam accumulate distinct
// history rows and nothing ever mutates or deletes them.
//
// Score, TotalPoints, Percentage and Passed are caller-supplied and stored
// verbatim; the service does not recompute or cross-validate them.
type ExamResult struct {
	ID          int64
	UserID      int64
	CourseID    string
	ExamTitle   string
	Score       float64
	TotalPoints float64
	Percentage  float64
	Passed      bool
	TimeTaken   *int // seconds, optional
	Answers     map[string]interface{}
	CompletedAt time.Time
}

// ExamResultRepository defines the interface for exam result persistence.
// Listings are always scoped to a single owning user and ordered by
// completion time, most recent first.
type ExamResultRepository interface {
	CreateResult(ctx context.Context, result *ExamResult) (*ExamResult, error)
	GetResultsByUserID(ctx context.Context, userID int64) ([]ExamResult, error)
	GetResultsByUserAndCourse(ctx context.Context, userID int64, courseID string) ([]ExamResult, error)
}
