package quiz

import (
	"fmt"
	"time"
)

type State string

const (
	StateLoading          State = "loading"
	StateInProgress       State = "in_progress"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StateAlreadyCompleted State = "already_completed"
)

// Terminal states accept no further transitions.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateAlreadyCompleted
}

// Clock is injected wherever the current time matters.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystemClock() Clock { return systemClock{} }

// Session is the attempt state machine shared by every quiz flavour.
type Session struct {
	State     State
	StartedAt time.Time
	Deadline  *time.Time
	Draft     Answers
}

func NewSession() *Session {
	return &Session{State: StateLoading, Draft: Answers{Choices: map[int]int{}}}
}

// Restore rebuilds a session from persisted fields.
func Restore(state State, startedAt time.Time, deadline *time.Time, draft Answers) *Session {
	if draft.Choices == nil {
		draft.Choices = map[int]int{}
	}
	return &Session{State: state, StartedAt: startedAt, Deadline: deadline, Draft: draft}
}

// Begin leaves the loading state. A prior completion on a single-attempt quiz
// ends in already_completed; otherwise the countdown starts at now.
func (s *Session) Begin(def Definition, now time.Time, priorSubmissions int) error {
	if s.State != StateLoading {
		return s.invalid(StateInProgress)
	}
	if !def.AllowMultipleAttempts && priorSubmissions > 0 {
		s.State = StateAlreadyCompleted
		return nil
	}
	s.State = StateInProgress
	s.StartedAt = now
	if limit := def.TimeLimitDuration(); limit > 0 {
		d := now.Add(limit)
		s.Deadline = &d
	}
	return nil
}

// Choose records an MCQ selection. Nothing is persisted as a submission.
func (s *Session) Choose(questionIndex, optionIndex int) error {
	if s.State != StateInProgress {
		return s.invalid(StateInProgress)
	}
	s.Draft.Choices[questionIndex] = optionIndex
	return nil
}

func (s *Session) WriteText(text string) error {
	if s.State != StateInProgress {
		return s.invalid(StateInProgress)
	}
	s.Draft.Text = text
	return nil
}

func (s *Session) AttachFile(url string) error {
	if s.State != StateInProgress {
		return s.invalid(StateInProgress)
	}
	s.Draft.FileURL = url
	return nil
}

// Remaining returns the time left and whether the session is timed at all.
func (s *Session) Remaining(now time.Time) (time.Duration, bool) {
	if s.Deadline == nil {
		return 0, false
	}
	left := s.Deadline.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Expired is true once the countdown of an in-progress session reached zero.
func (s *Session) Expired(now time.Time) bool {
	if s.State != StateInProgress || s.Deadline == nil {
		return false
	}
	return !now.Before(*s.Deadline)
}

// AcceptsAt reports whether a student-triggered submit at t is still on time.
func (s *Session) AcceptsAt(t time.Time, grace time.Duration) bool {
	if s.Deadline == nil {
		return true
	}
	return !t.After(s.Deadline.Add(grace))
}

// BeginSubmit moves in_progress -> submitting. There is no way back to
// in_progress except Fail.
func (s *Session) BeginSubmit() error {
	if s.State != StateInProgress {
		if s.State.Terminal() {
			return ErrAlreadySubmitted
		}
		if s.State == StateSubmitting {
			return ErrSubmissionPending
		}
		return s.invalid(StateSubmitting)
	}
	s.State = StateSubmitting
	return nil
}

// Fail reverts a failed submission so the student can resubmit.
func (s *Session) Fail() error {
	if s.State != StateSubmitting {
		return s.invalid(StateInProgress)
	}
	s.State = StateInProgress
	return nil
}

func (s *Session) Complete() error {
	if s.State != StateSubmitting {
		return s.invalid(StateSubmitted)
	}
	s.State = StateSubmitted
	return nil
}

func (s *Session) invalid(to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
}
