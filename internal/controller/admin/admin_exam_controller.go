package admin

import (
	"net/http"
	"strconv"

	"github.com/classify-edu/classify-server/internal/controller"
	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminExamController struct {
	examService service.AdminExamService
}

func NewAdminExamController(examService service.AdminExamService) *AdminExamController {
	return &AdminExamController{examService: examService}
}

// CreateExam godoc
// @Summary (Admin) Create a new exam
// @Description Create an exam with an explicit ordered question list, or with pooling parameters (topic_ids + num_questions) to draw a random fixed subset at creation time.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam definition"
// @Success 201 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or no questions selectable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exams [post]
func (c *AdminExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ExamCreateDTO")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.examService.CreateExam(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateExam godoc
// @Summary (Admin) Update exam metadata
// @Description Update exam metadata including the publish flag. Only non-null fields are applied.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param exam body dto.ExamUpdateDTO true "Fields to update"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id} [put]
func (c *AdminExamController) UpdateExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.examService.UpdateExam(examID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplaceQuestions godoc
// @Summary (Admin) Replace an exam's fixed question set
// @Description Replace the ordered question list of an unpublished exam. Published exams are locked.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param questions body dto.ExamQuestionsReplaceDTO true "Ordered question IDs"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Exam already published"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/questions [post]
func (c *AdminExamController) ReplaceQuestions(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamQuestionsReplaceDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.examService.ReplaceQuestions(examID, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetExam godoc
// @Summary (Admin) Get an exam
// @Tags Admin - Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id} [get]
func (c *AdminExamController) GetExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	resp, err := c.examService.GetExam(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListExams godoc
// @Summary (Admin) List exams
// @Tags Admin - Exams
// @Produce json
// @Param course_id query int false "Filter by course"
// @Param semester_id query int false "Filter by semester"
// @Success 200 {array} dto.ExamResponseDTO
// @Router /admin/exams [get]
func (c *AdminExamController) ListExams(ctx *gin.Context) {
	courseID, ok := queryID(ctx, "course_id")
	if !ok {
		return
	}
	semesterID, ok := queryID(ctx, "semester_id")
	if !ok {
		return
	}
	resp, err := c.examService.ListExams(courseID, semesterID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetExamResults godoc
// @Summary (Admin) List all attempts for an exam
// @Description Instructor view of every attempt with grading fields; in-progress attempts appear without a score.
// @Tags Admin - Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.ExamResultRowDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/results [get]
func (c *AdminExamController) GetExamResults(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	rows, err := c.examService.GetExamResults(examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// pathID parses a required uint path parameter, writing a 400 on failure.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// queryID parses an optional uint query parameter, writing a 400 on failure.
func queryID(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return nil, false
	}
	id := uint(val)
	return &id, true
}
