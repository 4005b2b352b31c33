package dto

import "time"

// CompleteLessonRequest is the request body for marking a lesson complete.
// Completed defaults to true when omitted. Course and lesson identifiers are
// opaque tokens and are not validated, presence included.
type CompleteLessonRequest struct {
	CourseID  string `json:"course_id"`
	LessonID  string `json:"lesson_id"`
	Completed *bool  `json:"completed,omitempty"`
	QuizScore *int   `json:"quiz_score,omitempty"`
}

// LessonCompletionResponse is the outbound representation of a lesson
// completion row.
type LessonCompletionResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CourseID    string     `json:"course_id"`
	LessonID    string     `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	QuizScore   *int       `json:"quiz_score"`
	CompletedAt *time.Time `json:"completed_at"`
}
