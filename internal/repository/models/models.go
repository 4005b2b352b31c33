package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JSONMap is a custom type for the exam answers payload, stored as JSONB.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("JSONMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = nil
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// User represents a row in the users table.
type User struct {
	ID             int64          `db:"id"`              // BIGSERIAL
	Username       string         `db:"username"`        // Unique login name
	Email          string         `db:"email"`           // Unique email address
	FullName       sql.NullString `db:"full_name"`       // Optional display name
	HashedPassword string         `db:"hashed_password"` // bcrypt hash
	CreatedAt      time.Time      `db:"created_at"`      // Timestamp of registration
	IsActive       bool           `db:"is_active"`       // Inactive users cannot authenticate
}

// ExamResult represents a row in the exam_results table.
type ExamResult struct {
	ID          int64         `db:"id"`           // BIGSERIAL
	UserID      int64         `db:"user_id"`      // Foreign key to users table
	CourseID    string        `db:"course_id"`    // e.g. "cs141"
	ExamTitle   string        `db:"exam_title"`   // e.g. "Midterm"
	Score       float64       `db:"score"`        // Caller-supplied points achieved
	TotalPoints float64       `db:"total_points"` // Caller-supplied maximum points
	Percentage  float64       `db:"percentage"`   // Caller-supplied, not recomputed
	Passed      int           `db:"passed"`       // 1 for pass, 0 for fail
	TimeTaken   sql.NullInt64 `db:"time_taken"`   // Seconds, optional
	Answers     JSONMap       `db:"answers"`      // Free-form answer payload, optional
	CompletedAt time.Time     `db:"completed_at"` // Defaults to submission time
}

// LessonCompletion represents a row in the lesson_completions table.
// A unique index on (user_id, course_id, lesson_id) backs the upsert.
type LessonCompletion struct {
	ID          int64         `db:"id"`           // BIGSERIAL
	UserID      int64         `db:"user_id"`      // Foreign key to users table
	CourseID    string        `db:"course_id"`    // e.g. "cs141"
	LessonID    string        `db:"lesson_id"`    // e.g. "lesson1"
	Completed   bool          `db:"completed"`    // Default true
	QuizScore   sql.NullInt64 `db:"quiz_score"`   // If lesson has a quiz
	CompletedAt sql.NullTime  `db:"completed_at"` // Set on every completion signal
}
