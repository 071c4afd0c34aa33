package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuizTypeMCQ       = "mcq"
	QuizTypeOpenEnded = "open-ended"
)

type Quiz struct {
	ID                    uint    `gorm:"primarykey" json:"id"`
	CourseID              uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_quiz_position"`
	Course                Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	ModuleIndex           int     `json:"module_index" gorm:"not null;uniqueIndex:idx_quiz_position"`
	ItemIndex             int     `json:"item_index" gorm:"not null;uniqueIndex:idx_quiz_position"`
	Title                 string  `json:"title"`
	QuizType              string  `json:"quiz_type" gorm:"not null;size:16"` // "mcq", "open-ended"
	TimeLimit             *int    `json:"time_limit,omitempty"`              // minutes
	TotalPoints           float64 `json:"total_points" gorm:"not null"`
	PassingScore          int     `json:"passing_score" gorm:"not null;default:0"`
	AllowMultipleAttempts bool    `json:"allow_multiple_attempts" gorm:"not null;default:false"`
	ShowAnswers           *bool   `json:"show_answers,omitempty"` // nil falls back to the course setting

	// open-ended
	Question         string  `json:"question,omitempty" gorm:"type:text"`
	QuestionFile     *string `json:"question_file,omitempty"`
	AcceptTextAnswer bool    `json:"accept_text_answer" gorm:"not null;default:false"`
	AcceptFileUpload bool    `json:"accept_file_upload" gorm:"not null;default:false"`

	// mcq
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswersVisible resolves the quiz override against the course default.
func (q *Quiz) AnswersVisible() bool {
	if q.ShowAnswers != nil {
		return *q.ShowAnswers
	}
	return q.Course.ShowAnswers
}
