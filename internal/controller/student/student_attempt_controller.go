package student

import (
	"net/http"
	"strconv"

	"github.com/classify-edu/classify-server/internal/controller"
	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/middleware"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StudentAttemptController is the candidate-facing surface of the attempt state
// machine. The acting student is always taken from the bearer token, never from
// the request body.
type StudentAttemptController struct {
	attemptService service.AttemptService
	resultService  service.ResultService
}

func NewStudentAttemptController(attemptService service.AttemptService, resultService service.ResultService) *StudentAttemptController {
	return &StudentAttemptController{attemptService: attemptService, resultService: resultService}
}

// StartAttempt godoc
// @Summary (Student) Start or resume an exam attempt
// @Description Starts a new attempt, or resumes the existing in-progress one with its original clock and saved answers. A completed attempt cannot be restarted.
// @Tags Student - Attempts
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.AttemptStartResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Exam unpublished or outside its window"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /exams/{exam_id}/start [post]
func (c *StudentAttemptController) StartAttempt(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}

	resp, err := c.attemptService.StartAttempt(examID, middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveAnswer godoc
// @Summary (Student) Save one answer during an attempt
// @Description Advisory save for resume and for force-grading of expired attempts. Repeated saves for the same question overwrite the previous selection.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param answer body dto.AnswerSaveDTO true "Selection"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Question not part of this exam"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/answers [post]
func (c *StudentAttemptController) SaveAnswer(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.AnswerSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.SaveAnswer(attemptID, middleware.UserID(ctx), req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an attempt for grading
// @Description One-shot submit. The payload is the authoritative answer set; grading is synchronous and the graded result is returned directly.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param answers body dto.AttemptSubmitDTO true "Final answers"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{attempt_id}/submit [post]
func (c *StudentAttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind AttemptSubmitDTO")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.SubmitAttempt(attemptID, middleware.UserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResult godoc
// @Summary (Student) Get the graded result of an attempt
// @Description Graded summary for the owning student. Per-answer review with correct options is included only when the exam allows review.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not yet graded"
// @Router /attempts/{attempt_id}/result [get]
func (c *StudentAttemptController) GetResult(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	resp, err := c.attemptService.GetResult(attemptID, middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MyResults godoc
// @Summary (Student) Aggregate own results for the current semester
// @Description Same roll-up as the admin aggregate view, scoped to the authenticated student.
// @Tags Student - Results
// @Produce json
// @Success 200 {array} dto.StudentCourseResultDTO
// @Failure 400 {object} dto.ErrorResponse "No current semester set"
// @Router /my-results [get]
func (c *StudentAttemptController) MyResults(ctx *gin.Context) {
	studentID := middleware.UserID(ctx)
	rows, err := c.resultService.Aggregate(service.ResultFilter{StudentID: &studentID})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
