package quiz

import (
	"errors"
	"strings"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSessionNotFound    = errors.New("attempt session not found")

	ErrAlreadySubmitted  = errors.New("quiz already submitted")
	ErrSubmissionPending = errors.New("a submission for this attempt is already being processed")
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
	ErrInvalidTransition = errors.New("invalid attempt state transition")

	ErrQuizTypeMismatch = errors.New("quiz type does not match the quiz definition")
	ErrEmptySubmission  = errors.New("submission contains no answer")
	ErrInvalidAnswer    = errors.New("answer does not match any question or option")
	ErrScoreOutOfRange  = errors.New("score is outside the allowed range")
	ErrNotGradable      = errors.New("quiz is graded automatically")

	ErrInvalidDefinition = errors.New("invalid quiz definition")
)

// DefinitionError lists every problem found while validating a quiz definition.
type DefinitionError struct {
	Problems []string
}

func (e *DefinitionError) Error() string {
	return "invalid quiz definition: " + strings.Join(e.Problems, "; ")
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}
