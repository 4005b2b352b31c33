package handler

import (
	"educhat-backend/internal/dto"
	"educhat-backend/internal/logger"
	"educhat-backend/internal/middleware"
	"educhat-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExamHandler struct {
	examService service.ExamService
}

func NewExamHandler(examService service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// SubmitResult records a new exam result for the authenticated user.
// @Summary Submit Exam Result
// @Description Stores an exam submission. Every call creates a new row; prior attempts are kept as history.
// @Tags exams
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitExamResultRequest true "Exam result payload"
// @Success 201 {object} dto.ExamResultResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /exams/results [post]
func (h *ExamHandler) SubmitResult(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.SubmitExamResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_BODY", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
		})
	}

	result, err := h.examService.SubmitResult(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Exam result submitted",
		zap.Int64("userID", userID),
		zap.String("courseID", req.CourseID),
		zap.Int64("resultID", result.ID),
	)
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetMyResults lists all exam results of the authenticated user.
// @Summary Get My Exam Results
// @Description Lists the caller's exam results, most recent first.
// @Tags exams
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ExamResultResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /exams/results [get]
func (h *ExamHandler) GetMyResults(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	results, err := h.examService.GetMyResults(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetCourseResults lists the authenticated user's exam results for a course.
// @Summary Get Course Exam Results
// @Description Lists the caller's exam results for one course, most recent first. Unknown courses yield an empty list.
// @Tags exams
// @Security ApiKeyAuth
// @Produce json
// @Param course_id path string true "Course identifier"
// @Success 200 {array} dto.ExamResultResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /exams/results/{course_id} [get]
func (h *ExamHandler) GetCourseResults(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	courseID := c.Params("course_id")
	results, err := h.examService.GetCourseResults(c.Context(), userID, courseID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}
