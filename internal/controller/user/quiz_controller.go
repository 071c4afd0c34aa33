package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Nihongo/internal/controller"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService       service.QuizService
	attemptService    service.AttemptService
	submissionService service.SubmissionService
	resultsService    service.ResultsService
}

func NewQuizController(
	qs service.QuizService,
	as service.AttemptService,
	ss service.SubmissionService,
	rs service.ResultsService,
) *QuizController {
	return &QuizController{
		quizService:       qs,
		attemptService:    as,
		submissionService: ss,
		resultsService:    rs,
	}
}

// FetchQuiz godoc
// @Summary (User) Get a quiz
// @Description Returns the quiz at the given curriculum position. Correct flags and explanations are never included.
// @Tags User - Quiz
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param moduleIndex query int true "Module index"
// @Param itemIndex query int true "Item index"
// @Success 200 {object} dto.QuizView
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/fetch [get]
func (c *QuizController) FetchQuiz(ctx *gin.Context) {
	var q dto.QuizRefQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(ctx, "FetchQuiz", err)
		return
	}
	view, err := c.quizService.GetQuiz(ctx.Request.Context(), q.Ref())
	if err != nil {
		controller.RespondError(ctx, "FetchQuiz", err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// StartQuiz godoc
// @Summary (User) Start or resume an attempt
// @Description Opens an attempt session and starts the server-side countdown. An unfinished session is resumed; one whose time ran out is submitted first. A session that is being submitted returns 409. Single-attempt quizzes that were already submitted return state already_completed.
// @Tags User - Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartQuizRequest true "Quiz position"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 409 {object} dto.ErrorResponse "Submission in progress"
// @Router /quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	who, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "StartQuiz", err)
		return
	}
	session, err := c.attemptService.Start(ctx.Request.Context(), who, req.QuizRef)
	if err != nil {
		controller.RespondError(ctx, "StartQuiz", err)
		return
	}
	log.Info().Str("userID", who.UserID).Str("sessionID", session.SessionID).Str("state", session.State).Msg("Attempt session opened")
	ctx.JSON(http.StatusOK, session)
}

// SaveAnswer godoc
// @Summary (User) Save a draft answer
// @Description Stores one answer on the in-progress session. Nothing is submitted.
// @Tags User - Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveAnswerRequest true "Draft answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answer"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is no longer in progress"
// @Router /quiz/answer [put]
func (c *QuizController) SaveAnswer(ctx *gin.Context) {
	who, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "SaveAnswer", err)
		return
	}
	session, err := c.attemptService.SaveAnswer(ctx.Request.Context(), who, req)
	if err != nil {
		controller.RespondError(ctx, "SaveAnswer", err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// RecordIntegrityEvent godoc
// @Summary (User) Record an integrity event
// @Description Counts a copy, paste, context menu or tab switch during an attempt. Events are advisory and never block the attempt.
// @Tags User - Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IntegrityEventRequest true "Event"
// @Success 200 {object} dto.IntegrityResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid event"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /quiz/integrity [post]
func (c *QuizController) RecordIntegrityEvent(ctx *gin.Context) {
	who, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.IntegrityEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "RecordIntegrityEvent", err)
		return
	}
	resp, err := c.attemptService.RecordIntegrityEvent(ctx.Request.Context(), who, req)
	if err != nil {
		controller.RespondError(ctx, "RecordIntegrityEvent", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitQuiz godoc
// @Summary (User) Submit a quiz
// @Description Submits the answers of an attempt. MCQ answers are scored immediately; open-ended answers wait for manual grading. A request with no answers submits the draft saved on the session. Timed quizzes must be started first and are rejected once the time limit plus grace has passed.
// @Tags User - Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 201 {object} dto.SubmitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or empty submission"
// @Failure 403 {object} dto.ErrorResponse "Time limit exceeded"
// @Failure 404 {object} dto.ErrorResponse "Quiz or session not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted (alreadySubmitted=true) or submission in progress"
// @Router /quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	who, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "SubmitQuiz", err)
		return
	}
	resp, err := c.submissionService.Submit(ctx.Request.Context(), who, req)
	if err != nil {
		controller.RespondError(ctx, "SubmitQuiz", err)
		return
	}
	log.Info().Str("userID", who.UserID).Uint("submissionID", resp.SubmissionID).Str("status", resp.Status).Msg("Quiz submitted")
	ctx.JSON(http.StatusCreated, resp)
}

// GetResults godoc
// @Summary (User) Get my results
// @Description Lists the caller's submissions for a quiz, most recent first. The answer key is included only when answers are shown for the quiz and the caller has submitted at least once.
// @Tags User - Quiz
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param moduleIndex query int true "Module index"
// @Param itemIndex query int true "Item index"
// @Success 200 {object} dto.ResultsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/results [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	who, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var q dto.QuizRefQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(ctx, "GetResults", err)
		return
	}
	resp, err := c.resultsService.GetResults(ctx.Request.Context(), who, q.Ref())
	if err != nil {
		controller.RespondError(ctx, "GetResults", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegisterRoutes mounts the student endpoints on a group already behind RequireUser.
func (c *QuizController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/fetch", c.FetchQuiz)
	group.POST("/start", c.StartQuiz)
	group.PUT("/answer", c.SaveAnswer)
	group.POST("/integrity", c.RecordIntegrityEvent)
	group.POST("/submit", c.SubmitQuiz)
	group.GET("/results", c.GetResults)
}
