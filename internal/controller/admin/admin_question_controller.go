package admin

import (
	"net/http"

	"github.com/classify-edu/classify-server/internal/controller"
	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminQuestionController struct {
	questionService service.QuestionService
}

func NewAdminQuestionController(questionService service.QuestionService) *AdminQuestionController {
	return &AdminQuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to the bank
// @Tags Admin - Question Bank
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/questions [post]
func (c *AdminQuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuestionCreateDTO")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuestion godoc
// @Summary (Admin) Get a question
// @Tags Admin - Question Bank
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [get]
func (c *AdminQuestionController) GetQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestion(questionID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Question not found"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListQuestions godoc
// @Summary (Admin) List questions, filterable by course and topic
// @Tags Admin - Question Bank
// @Produce json
// @Param course_id query int false "Filter by course"
// @Param topic_id query int false "Filter by topic"
// @Success 200 {array} dto.QuestionResponseDTO
// @Router /admin/questions [get]
func (c *AdminQuestionController) ListQuestions(ctx *gin.Context) {
	courseID, ok := queryID(ctx, "course_id")
	if !ok {
		return
	}
	topicID, ok := queryID(ctx, "topic_id")
	if !ok {
		return
	}
	resp, err := c.questionService.ListQuestions(courseID, topicID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Edits take effect immediately, including for grading of not-yet-submitted attempts; exams freeze question IDs, not content.
// @Tags Admin - Question Bank
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateDTO true "Updated question data"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
func (c *AdminQuestionController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.UpdateQuestion(questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Soft delete; questions already fixed into exams keep grading through the exam's question set.
// @Tags Admin - Question Bank
// @Param question_id path int true "Question ID"
// @Success 204 "No Content"
// @Router /admin/questions/{question_id} [delete]
func (c *AdminQuestionController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateTopic godoc
// @Summary (Admin) Create a topic within a course
// @Tags Admin - Question Bank
// @Accept json
// @Produce json
// @Param topic body dto.TopicCreateDTO true "Topic data"
// @Success 201 {object} dto.TopicResponseDTO
// @Router /admin/topics [post]
func (c *AdminQuestionController) CreateTopic(ctx *gin.Context) {
	var req dto.TopicCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.questionService.CreateTopic(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTopics godoc
// @Summary (Admin) List topics for a course
// @Tags Admin - Question Bank
// @Produce json
// @Param course_id query int true "Course ID"
// @Success 200 {array} dto.TopicResponseDTO
// @Router /admin/topics [get]
func (c *AdminQuestionController) ListTopics(ctx *gin.Context) {
	courseID, ok := queryID(ctx, "course_id")
	if !ok {
		return
	}
	if courseID == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "course_id is required"})
		return
	}
	resp, err := c.questionService.ListTopics(*courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
