package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionOption is stored inline in the question row as JSON.
type QuestionOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID            uint                                `gorm:"primarykey" json:"id"`
	QuizID        uint                                `json:"quiz_id" gorm:"not null;index"`
	QuestionIndex int                                 `json:"question_index" gorm:"not null"`
	Question      string                              `json:"question" gorm:"type:text;not null"`
	Points        float64                             `json:"points" gorm:"not null"`
	Explanation   string                              `json:"explanation,omitempty" gorm:"type:text"`
	Options       datatypes.JSONSlice[QuestionOption] `json:"options"`
	CreatedAt     time.Time                           `json:"created_at"`
	UpdatedAt     time.Time                           `json:"updated_at"`
}
