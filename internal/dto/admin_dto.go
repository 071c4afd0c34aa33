package dto

import "time"

type CourseCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	ShowAnswers bool   `json:"showAnswers"`
}

type CourseResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ShowAnswers bool      `json:"showAnswers"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OptionDTO struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

type QuestionUpsertDTO struct {
	QuestionIndex int         `json:"questionIndex" binding:"min=0"`
	Question      string      `json:"question" binding:"required"`
	Points        float64     `json:"points"`
	Explanation   string      `json:"explanation,omitempty"`
	Options       []OptionDTO `json:"options" binding:"dive"`
}

// QuizUpsertDTO creates or replaces the quiz at a curriculum position. The
// answer key is checked by the service, which reports every problem at once.
type QuizUpsertDTO struct {
	QuizRef
	Title                 string              `json:"title"`
	QuizType              string              `json:"quizType" binding:"required,quiztype"`
	TimeLimit             *int                `json:"timeLimit"`
	TotalPoints           float64             `json:"totalPoints"`
	PassingScore          int                 `json:"passingScore"`
	AllowMultipleAttempts bool                `json:"allowMultipleAttempts"`
	ShowAnswers           *bool               `json:"showAnswers"`
	Question              string              `json:"question,omitempty"`
	QuestionFile          *string             `json:"questionFile,omitempty"`
	AcceptTextAnswer      bool                `json:"acceptTextAnswer"`
	AcceptFileUpload      bool                `json:"acceptFileUpload"`
	Questions             []QuestionUpsertDTO `json:"questions" binding:"dive"`
}

// QuestionKeyDTO is a question with its answer key, for authors only.
type QuestionKeyDTO struct {
	QuestionIndex int         `json:"questionIndex"`
	Question      string      `json:"question"`
	Points        float64     `json:"points"`
	Explanation   string      `json:"explanation,omitempty"`
	Options       []OptionDTO `json:"options" copier:"-"`
}

type QuizKeyDTO struct {
	ID                    uint             `json:"id"`
	CourseID              uint             `json:"courseId"`
	ModuleIndex           int              `json:"moduleIndex"`
	ItemIndex             int              `json:"itemIndex"`
	Title                 string           `json:"title"`
	QuizType              string           `json:"quizType"`
	TimeLimit             *int             `json:"timeLimit,omitempty"`
	TotalPoints           float64          `json:"totalPoints"`
	PassingScore          int              `json:"passingScore"`
	AllowMultipleAttempts bool             `json:"allowMultipleAttempts"`
	ShowAnswers           *bool            `json:"showAnswers,omitempty"`
	Question              string           `json:"question,omitempty"`
	QuestionFile          *string          `json:"questionFile,omitempty"`
	AcceptTextAnswer      bool             `json:"acceptTextAnswer"`
	AcceptFileUpload      bool             `json:"acceptFileUpload"`
	Questions             []QuestionKeyDTO `json:"questions,omitempty" copier:"-"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}
