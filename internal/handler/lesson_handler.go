package handler

import (
	"educhat-backend/internal/dto"
	"educhat-backend/internal/logger"
	"educhat-backend/internal/middleware"
	"educhat-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LessonHandler struct {
	lessonService service.LessonService
}

func NewLessonHandler(lessonService service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// CompleteLesson marks a lesson complete for the authenticated user.
// @Summary Complete Lesson
// @Description Creates or updates the completion record for a (course, lesson) pair. Repeated calls update the same row.
// @Tags lessons
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CompleteLessonRequest true "Lesson completion payload"
// @Success 201 {object} dto.LessonCompletionResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /lessons/complete [post]
func (h *LessonHandler) CompleteLesson(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
		})
	}

	completion, err := h.lessonService.CompleteLesson(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Lesson completion recorded",
		zap.Int64("userID", userID),
		zap.String("courseID", req.CourseID),
		zap.String("lessonID", req.LessonID),
	)
	return c.Status(fiber.StatusCreated).JSON(completion)
}

// GetCourseProgress lists the authenticated user's lesson completions for a
// course.
// @Summary Get Course Progress
// @Description Lists the caller's lesson completions for one course.
// @Tags lessons
// @Security ApiKeyAuth
// @Produce json
// @Param course_id path string true "Course identifier"
// @Success 200 {array} dto.LessonCompletionResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /lessons/progress/{course_id} [get]
func (h *LessonHandler) GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	courseID := c.Params("course_id")
	completions, err := h.lessonService.GetCourseProgress(c.Context(), userID, courseID)
	if err != nil {
		return err
	}
	return c.JSON(completions)
}
