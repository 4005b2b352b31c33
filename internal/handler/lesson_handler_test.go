package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"educhat-backend/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLessonApp(mockSvc *MockLessonService, userID int64) *fiber.App {
	app := newTestApp()
	h := NewLessonHandler(mockSvc)
	lessons := app.Group("/api/lessons", injectUser(userID))
	lessons.Post("/complete", h.CompleteLesson)
	lessons.Get("/progress/:course_id", h.GetCourseProgress)
	return app
}

func TestCompleteLessonEndpoint(t *testing.T) {
	mockSvc := new(MockLessonService)
	app := setupLessonApp(mockSvc, 10)

	quizScore := 90
	now := time.Now()
	mockSvc.On("CompleteLesson", mock.Anything, int64(10), mock.MatchedBy(func(r *dto.CompleteLessonRequest) bool {
		return r.CourseID == "cs141" && r.LessonID == "lesson-3" &&
			r.QuizScore != nil && *r.QuizScore == 90
	})).Return(&dto.LessonCompletionResponse{
		ID:          5,
		UserID:      10,
		CourseID:    "cs141",
		LessonID:    "lesson-3",
		Completed:   true,
		QuizScore:   &quizScore,
		CompletedAt: &now,
	}, nil).Once()

	body, _ := json.Marshal(dto.CompleteLessonRequest{
		CourseID:  "cs141",
		LessonID:  "lesson-3",
		QuizScore: &quizScore,
	})
	req := httptest.NewRequest("POST", "/api/lessons/complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var completion dto.LessonCompletionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completion))
	assert.Equal(t, int64(5), completion.ID)
	assert.True(t, completion.Completed)
	require.NotNil(t, completion.QuizScore)
	assert.Equal(t, 90, *completion.QuizScore)
	mockSvc.AssertExpectations(t)
}

func TestCompleteLessonEndpointInvalidBody(t *testing.T) {
	mockSvc := new(MockLessonService)
	app := setupLessonApp(mockSvc, 10)

	req := httptest.NewRequest("POST", "/api/lessons/complete", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	mockSvc.AssertNotCalled(t, "CompleteLesson", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCourseProgressEndpoint(t *testing.T) {
	mockSvc := new(MockLessonService)
	app := setupLessonApp(mockSvc, 10)

	quizScore := 80
	mockSvc.On("GetCourseProgress", mock.Anything, int64(10), "cs141").Return([]dto.LessonCompletionResponse{
		{ID: 1, CourseID: "cs141", LessonID: "lesson-1", Completed: true, QuizScore: &quizScore},
		{ID: 2, CourseID: "cs141", LessonID: "lesson-2", Completed: false},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/lessons/progress/cs141", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var progress []dto.LessonCompletionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&progress))
	require.Len(t, progress, 2)
	assert.Equal(t, "lesson-1", progress[0].LessonID)
	// Null quiz_score and completed_at serialize as JSON null.
	assert.Nil(t, progress[1].QuizScore)
	assert.Nil(t, progress[1].CompletedAt)
	mockSvc.AssertExpectations(t)
}

func TestGetCourseProgressEndpointEmpty(t *testing.T) {
	mockSvc := new(MockLessonService)
	app := setupLessonApp(mockSvc, 10)

	mockSvc.On("GetCourseProgress", mock.Anything, int64(10), "unknown").
		Return([]dto.LessonCompletionResponse{}, nil).Once()

	req := httptest.NewRequest("GET", "/api/lessons/progress/unknown", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
	mockSvc.AssertExpectations(t)
}

func TestLessonEndpointsRequireUserContext(t *testing.T) {
	mockSvc := new(MockLessonService)
	app := newTestApp()
	h := NewLessonHandler(mockSvc)
	app.Post("/api/lessons/complete", h.CompleteLesson)

	body, _ := json.Marshal(dto.CompleteLessonRequest{CourseID: "cs141", LessonID: "lesson-3"})
	req := httptest.NewRequest("POST", "/api/lessons/complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	mockSvc.AssertNotCalled(t, "CompleteLesson", mock.Anything, mock.Anything, mock.Anything)
}
