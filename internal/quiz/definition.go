package quiz

import (
	"fmt"
	"math"
	"time"
)

type Type string

const (
	TypeMCQ       Type = "mcq"
	TypeOpenEnded Type = "open-ended"
)

func (t Type) Valid() bool {
	return t == TypeMCQ || t == TypeOpenEnded
}

// Option is one choice of a multiple-choice question.
type Option struct {
	Text    string
	Correct bool
}

// Question is a single-answer multiple-choice question.
type Question struct {
	Index       int
	Text        string
	Points      float64
	Explanation string
	Options     []Option
}

// CorrectOption returns the index of the option flagged correct, or -1.
func (q Question) CorrectOption() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// Definition is the gradable part of a quiz, independent of storage.
type Definition struct {
	Type                  Type
	TimeLimit             *int // minutes
	TotalPoints           float64
	PassingScore          int // percentage
	AllowMultipleAttempts bool
	Questions             []Question

	// open-ended only
	AcceptTextAnswer bool
	AcceptFileUpload bool
}

// TimeLimitDuration is zero for untimed quizzes.
func (d Definition) TimeLimitDuration() time.Duration {
	if d.TimeLimit == nil || *d.TimeLimit <= 0 {
		return 0
	}
	return time.Duration(*d.TimeLimit) * time.Minute
}

func (d Definition) Timed() bool {
	return d.TimeLimitDuration() > 0
}

// QuestionByIndex looks a question up by its questionIndex, not its slice position.
func (d Definition) QuestionByIndex(idx int) (Question, bool) {
	for _, q := range d.Questions {
		if q.Index == idx {
			return q, true
		}
	}
	return Question{}, false
}

// MCQTotalPoints sums the points of every question.
func (d Definition) MCQTotalPoints() float64 {
	total := 0.0
	for _, q := range d.Questions {
		total += q.Points
	}
	return total
}

// Validate checks the authoring-time invariants. All problems are reported at once.
func (d Definition) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !d.Type.Valid() {
		add("quizType must be %q or %q, got %q", TypeMCQ, TypeOpenEnded, d.Type)
	}
	if d.PassingScore < 0 || d.PassingScore > 100 {
		add("passingScore must be between 0 and 100, got %d", d.PassingScore)
	}
	if d.TimeLimit != nil && *d.TimeLimit <= 0 {
		add("timeLimit must be positive when set, got %d", *d.TimeLimit)
	}

	switch d.Type {
	case TypeMCQ:
		if len(d.Questions) == 0 {
			add("an mcq quiz needs at least one question")
		}
		seen := make(map[int]bool, len(d.Questions))
		for _, q := range d.Questions {
			if seen[q.Index] {
				add("duplicate questionIndex %d", q.Index)
			}
			seen[q.Index] = true
			if q.Points <= 0 {
				add("question %d: points must be positive", q.Index)
			}
			if len(q.Options) < 2 {
				add("question %d: needs at least two options", q.Index)
			}
			correct := 0
			for _, o := range q.Options {
				if o.Correct {
					correct++
				}
			}
			if correct != 1 {
				add("question %d: exactly one option must be correct, found %d", q.Index, correct)
			}
		}
		if len(d.Questions) > 0 && math.Abs(d.TotalPoints-d.MCQTotalPoints()) > 1e-9 {
			add("totalPoints %.2f does not match the sum of question points %.2f", d.TotalPoints, d.MCQTotalPoints())
		}
	case TypeOpenEnded:
		if !d.AcceptTextAnswer && !d.AcceptFileUpload {
			add("an open-ended quiz must accept a text answer, a file upload, or both")
		}
		if d.TotalPoints <= 0 {
			add("totalPoints must be positive")
		}
	}

	if len(problems) > 0 {
		return &DefinitionError{Problems: problems}
	}
	return nil
}
