package model

import "time"

// GradeEvent is append-only. The latest event per submission is its current grade.
type GradeEvent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SubmissionID uint      `json:"submission_id" gorm:"not null;index"`
	Score        float64   `json:"score"`
	Percentage   int       `json:"percentage"`
	Passed       bool      `json:"passed"`
	Feedback     string    `json:"feedback,omitempty" gorm:"type:text"`
	GradedBy     string    `json:"graded_by" gorm:"not null;size:128"`
	GradedAt     time.Time `json:"graded_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
