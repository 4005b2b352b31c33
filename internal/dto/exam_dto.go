package dto

import "time"

// SubmitExamResultRequest is the request body for submitting an exam result.
// Score, total_points, percentage and passed are stored as given; the server
// does not cross-validate them against each other. Course and exam
// identifiers are opaque strings, accepted as-is.
type SubmitExamResultRequest struct {
	CourseID    string                 `json:"course_id"`
	ExamTitle   string                 `json:"exam_title"`
	Score       float64                `json:"score"`
	TotalPoints float64                `json:"total_points"`
	Percentage  float64                `json:"percentage"`
	Passed      bool                   `json:"passed"`
	TimeTaken   *int                   `json:"time_taken,omitempty"` // seconds
	Answers     map[string]interface{} `json:"answers,omitempty"`
}

// ExamResultResponse is the outbound representation of a stored exam result.
// Passed is persisted as 0/1 but always serialized as a boolean here.
type ExamResultResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CourseID    string    `json:"course_id"`
	ExamTitle   string    `json:"exam_title"`
	Score       float64   `json:"score"`
	TotalPoints float64   `json:"total_points"`
	Percentage  float64   `json:"percentage"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completed_at"`
}
