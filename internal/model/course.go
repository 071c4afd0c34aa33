package model

import (
	"time"

	"gorm.io/gorm"
)

// Course owns the curriculum; quizzes hang off it at (module_index, item_index).
type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	ShowAnswers bool           `json:"show_answers" gorm:"not null;default:false"`
	Quizzes     []Quiz         `json:"quizzes,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
