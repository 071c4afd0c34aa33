package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Nihongo/internal/controller"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/service"
	"github.com/rs/zerolog/log"
)

type GradingController struct {
	gradingService service.GradingService
}

func NewGradingController(gradingService service.GradingService) *GradingController {
	return &GradingController{gradingService: gradingService}
}

// ListSubmissions godoc
// @Summary (Admin) Grading queue for an open-ended quiz
// @Description Returns the quiz and its submissions split into ungraded and graded.
// @Tags Admin - Grading
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param moduleIndex query int true "Module index"
// @Param itemIndex query int true "Item index"
// @Success 200 {object} dto.GradingQueueResponse
// @Failure 400 {object} dto.ErrorResponse "Quiz is graded automatically"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/grade [get]
func (c *GradingController) ListSubmissions(ctx *gin.Context) {
	var q dto.QuizRefQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(ctx, "ListSubmissions", err)
		return
	}
	resp, err := c.gradingService.ListSubmissions(ctx.Request.Context(), q.Ref())
	if err != nil {
		controller.RespondError(ctx, "ListSubmissions", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GradeSubmission godoc
// @Summary (Admin) Grade a submission
// @Description Sets the score and feedback of an open-ended submission. Re-grading replaces the current grade and keeps the previous one in the grade history.
// @Tags Admin - Grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GradeSubmissionRequest true "Score and feedback"
// @Success 200 {object} dto.GradingEntry
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 404 {object} dto.ErrorResponse "Quiz or submission not found"
// @Router /quiz/grade [put]
func (c *GradingController) GradeSubmission(ctx *gin.Context) {
	grader, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "GradeSubmission", err)
		return
	}
	entry, err := c.gradingService.Grade(ctx.Request.Context(), grader, req)
	if err != nil {
		controller.RespondError(ctx, "GradeSubmission", err)
		return
	}
	log.Info().Uint("submissionID", entry.ID).Str("gradedBy", grader.UserID).Msg("Submission graded")
	ctx.JSON(http.StatusOK, entry)
}

// GradeHistory godoc
// @Summary (Admin) Grade history of a submission
// @Tags Admin - Grading
// @Produce json
// @Security BearerAuth
// @Param submissionId query int true "Submission ID"
// @Success 200 {array} dto.GradeEventDTO
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /quiz/grade/history [get]
func (c *GradingController) GradeHistory(ctx *gin.Context) {
	var q dto.GradeHistoryQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(ctx, "GradeHistory", err)
		return
	}
	events, err := c.gradingService.History(ctx.Request.Context(), q.SubmissionID)
	if err != nil {
		controller.RespondError(ctx, "GradeHistory", err)
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// SuggestGrade godoc
// @Summary (Admin) AI grading suggestion
// @Description Asks Gemini for a score and feedback. Nothing is stored.
// @Tags Admin - Grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SuggestGradeRequest true "Submission"
// @Success 200 {object} dto.GradeSuggestionResponse
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Suggestion unavailable"
// @Router /quiz/grade/suggest [post]
func (c *GradingController) SuggestGrade(ctx *gin.Context) {
	var req dto.SuggestGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "SuggestGrade", err)
		return
	}
	resp, err := c.gradingService.Suggest(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "SuggestGrade", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegisterRoutes mounts the grading endpoints on a group behind RequireUser and RequireRole(admin).
func (c *GradingController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", c.ListSubmissions)
	group.PUT("", c.GradeSubmission)
	group.GET("/history", c.GradeHistory)
	group.POST("/suggest", c.SuggestGrade)
}
