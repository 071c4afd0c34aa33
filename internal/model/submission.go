package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SubmissionStatusGraded         = "graded"
	SubmissionStatusPendingGrading = "pending_grading"
)

// Submission is one attempt of one student. Rows are never deleted; only the
// current-grade columns change when an open-ended answer is (re)graded.
type Submission struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	QuizID        uint    `json:"quiz_id" gorm:"not null;uniqueIndex:idx_submission_attempt"`
	Quiz          Quiz    `json:"-" gorm:"foreignKey:QuizID"`
	CourseID      uint    `json:"course_id" gorm:"not null;index"`
	ModuleIndex   int     `json:"module_index"`
	ItemIndex     int     `json:"item_index"`
	StudentID     string  `json:"student_id" gorm:"not null;size:128;uniqueIndex:idx_submission_attempt"`
	StudentEmail  string  `json:"student_email,omitempty"`
	SessionID     *string `json:"session_id,omitempty" gorm:"size:36;uniqueIndex"`
	AttemptNumber int     `json:"attempt_number" gorm:"not null;uniqueIndex:idx_submission_attempt"`
	QuizType      string  `json:"quiz_type" gorm:"not null;size:16"`

	Choices    datatypes.JSONType[map[int]int] `json:"choices"`
	TextAnswer string                          `json:"text_answer,omitempty" gorm:"type:text"`
	FileURL    string                          `json:"file_url,omitempty"`

	Score       float64 `json:"score"`
	TotalPoints float64 `json:"total_points"`
	Percentage  int     `json:"percentage"`
	Passed      bool    `json:"passed"`
	Status      string  `json:"status" gorm:"not null;size:32;index"`

	StartedAt       time.Time `json:"started_at"`
	SubmittedAt     time.Time `json:"submitted_at" gorm:"index"`
	TimeSpent       int       `json:"time_spent"` // seconds
	AutoSubmitted   bool      `json:"auto_submitted"`
	TabSwitches     int       `json:"tab_switches"`
	ClipboardEvents int       `json:"clipboard_events"`

	GradedScore *float64     `json:"graded_score,omitempty"`
	Feedback    string       `json:"feedback,omitempty" gorm:"type:text"`
	GradedAt    *time.Time   `json:"graded_at,omitempty"`
	GradedBy    *string      `json:"graded_by,omitempty"`
	GradeEvents []GradeEvent `json:"grade_events,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
