package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Nihongo/internal/controller"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQuizController struct {
	adminQuizService service.AdminQuizService
}

func NewAdminQuizController(adminQuizService service.AdminQuizService) *AdminQuizController {
	return &AdminQuizController{adminQuizService: adminQuizService}
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CourseCreateDTO true "Course data"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses [post]
func (c *AdminQuizController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "Admin CreateCourse", err)
		return
	}
	course, err := c.adminQuizService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateCourse", err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// UpsertQuiz godoc
// @Summary (Admin) Create or replace a quiz
// @Description Stores the quiz at a curriculum position. The answer key is validated first: every MCQ question needs at least two options and exactly one correct option, and all problems are reported together. For MCQ a totalPoints of 0 means the sum of question points.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizUpsertDTO true "Quiz definition including the answer key"
// @Success 200 {object} dto.QuizKeyDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz definition; details lists every problem"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/quizzes [put]
func (c *AdminQuizController) UpsertQuiz(ctx *gin.Context) {
	var req dto.QuizUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, "Admin UpsertQuiz", err)
		return
	}
	q, err := c.adminQuizService.UpsertQuiz(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "Admin UpsertQuiz", err)
		return
	}
	log.Info().Uint("quizID", q.ID).Uint("courseID", q.CourseID).Msg("Quiz stored")
	ctx.JSON(http.StatusOK, q)
}

// GetQuiz godoc
// @Summary (Admin) Get a quiz with its answer key
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param moduleIndex query int true "Module index"
// @Param itemIndex query int true "Item index"
// @Success 200 {object} dto.QuizKeyDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes [get]
func (c *AdminQuizController) GetQuiz(ctx *gin.Context) {
	var q dto.QuizRefQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.RespondBindError(ctx, "Admin GetQuiz", err)
		return
	}
	resp, err := c.adminQuizService.GetQuizWithAnswers(ctx.Request.Context(), q.Ref())
	if err != nil {
		controller.RespondError(ctx, "Admin GetQuiz", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *AdminQuizController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/courses", c.CreateCourse)
	group.PUT("/quizzes", c.UpsertQuiz)
	group.GET("/quizzes", c.GetQuiz)
}
