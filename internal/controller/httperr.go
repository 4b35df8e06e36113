package controller

import (
	"errors"
	"net/http"

	"github.com/classify-edu/classify-server/internal/dto"
	"github.com/classify-edu/classify-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RespondError maps service errors onto HTTP statuses. Unknown errors log and
// return a generic 500 so internals never leak to clients.
func RespondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Resource not found"})
	case errors.Is(err, service.ErrExamNotPublished),
		errors.Is(err, service.ErrExamNotOpenYet),
		errors.Is(err, service.ErrExamWindowClosed),
		errors.Is(err, service.ErrExamLocked),
		errors.Is(err, service.ErrAttemptForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAttemptCompleted),
		errors.Is(err, service.ErrAttemptNotGraded):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrQuestionNotInExam),
		errors.Is(err, service.ErrExamHasNoQuestions),
		errors.Is(err, service.ErrNoCurrentSemester):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}
