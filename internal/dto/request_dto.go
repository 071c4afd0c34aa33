package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Nihongo/internal/quiz"
)

// QuizRefQuery addresses a quiz by its curriculum position in query strings.
type QuizRefQuery struct {
	CourseID    uint `form:"courseId" binding:"required"`
	ModuleIndex *int `form:"moduleIndex" binding:"required,min=0"`
	ItemIndex   *int `form:"itemIndex" binding:"required,min=0"`
}

// QuizRef is the JSON body counterpart of QuizRefQuery.
type QuizRef struct {
	CourseID    uint `json:"courseId" binding:"required" example:"1"`
	ModuleIndex *int `json:"moduleIndex" binding:"required,min=0" example:"0"`
	ItemIndex   *int `json:"itemIndex" binding:"required,min=0" example:"2"`
}

func (q QuizRefQuery) Ref() QuizRef {
	return QuizRef{CourseID: q.CourseID, ModuleIndex: q.ModuleIndex, ItemIndex: q.ItemIndex}
}

func (q QuizRef) Module() int { return *q.ModuleIndex }

func (q QuizRef) Item() int { return *q.ItemIndex }

type StartQuizRequest struct {
	QuizRef
}

// SaveAnswerRequest stores one draft answer. For MCQ set questionIndex and
// optionIndex; for open-ended set textAnswer and/or fileUrl.
type SaveAnswerRequest struct {
	SessionID     string  `json:"sessionId" binding:"required,uuid"`
	QuestionIndex *int    `json:"questionIndex" binding:"omitempty,min=0"`
	OptionIndex   *int    `json:"optionIndex" binding:"omitempty,min=0"`
	TextAnswer    *string `json:"textAnswer"`
	FileURL       *string `json:"fileUrl" binding:"omitempty,url"`
}

type IntegrityEventRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
	Event     string `json:"event" binding:"required,oneof=copy paste context_menu tab_hidden" example:"tab_hidden"`
}

// SubmitQuizRequest answers maps questionIndex to the selected option index.
type SubmitQuizRequest struct {
	QuizRef
	QuizType   string      `json:"quizType" binding:"required,quiztype" example:"mcq"`
	SessionID  string      `json:"sessionId" binding:"omitempty,uuid"`
	Answers    map[int]int `json:"answers"`
	TextAnswer string      `json:"textAnswer"`
	FileURL    string      `json:"fileUrl" binding:"omitempty,url"`
	StartedAt  *time.Time  `json:"startedAt"`
}

type GradeSubmissionRequest struct {
	QuizRef
	SubmissionID uint     `json:"submissionId" binding:"required"`
	Score        *float64 `json:"score" binding:"required"`
	Feedback     string   `json:"feedback"`
}

type GradeHistoryQuery struct {
	SubmissionID uint `form:"submissionId" binding:"required"`
}

type SuggestGradeRequest struct {
	SubmissionID uint `json:"submissionId" binding:"required"`
}

// RegisterValidators adds the custom binding rules used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("quiztype", func(fl validator.FieldLevel) bool {
		return quiz.Type(fl.Field().String()).Valid()
	})
}
