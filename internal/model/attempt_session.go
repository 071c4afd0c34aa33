package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptSession is the server-side record of an attempt in flight. StartedAt
// and Deadline are set by the server and are the only time authority.
type AttemptSession struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	QuizID        uint       `json:"quiz_id" gorm:"not null;index:idx_session_owner"`
	StudentID     string     `json:"student_id" gorm:"not null;size:128;index:idx_session_owner"`
	StudentEmail  string     `json:"student_email,omitempty"`
	State         string     `json:"state" gorm:"not null;size:32;index"` // "in_progress", "submitting", "submitted"
	AttemptNumber int        `json:"attempt_number"`
	StartedAt     time.Time  `json:"started_at" gorm:"not null"`
	Deadline      *time.Time `json:"deadline,omitempty" gorm:"index"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	// ClaimedAt is when a submit moved the session to submitting.
	ClaimedAt *time.Time `json:"claimed_at,omitempty" gorm:"index"`

	DraftChoices datatypes.JSONType[map[int]int] `json:"draft_choices"`
	DraftText    string                          `json:"draft_text,omitempty" gorm:"type:text"`
	DraftFileURL string                          `json:"draft_file_url,omitempty"`

	TabSwitches       int `json:"tab_switches"`
	ClipboardEvents   int `json:"clipboard_events"`
	ContextMenuEvents int `json:"context_menu_events"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AttemptSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
