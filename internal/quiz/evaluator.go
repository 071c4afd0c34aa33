package quiz

import (
	"math"
	"sort"
	"strings"
)

// Answers is what a student hands in. Choices maps questionIndex to the selected option index.
type Answers struct {
	Choices map[int]int
	Text    string
	FileURL string
}

// Empty reports whether nothing at all was handed in.
func (a Answers) Empty() bool {
	return len(a.Choices) == 0 && strings.TrimSpace(a.Text) == "" && strings.TrimSpace(a.FileURL) == ""
}

// QuestionResult is the per-question outcome of an MCQ evaluation.
type QuestionResult struct {
	Index     int
	Selected  *int
	Correct   int
	IsCorrect bool
	Points    float64
	Earned    float64
}

// Result is the outcome of evaluating or grading one submission.
type Result struct {
	Score       float64
	TotalPoints float64
	Percentage  int
	Passed      bool
	// Graded is false for open-ended submissions waiting for manual grading.
	Graded    bool
	Answered  int
	Questions []QuestionResult
}

// Percentage rounds half up, matching round(100*score/total).
func Percentage(score, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * score / total))
}

func Passed(percentage, passingScore int) bool {
	return percentage >= passingScore
}

// Evaluate scores a submission against the definition. MCQ answers are scored
// immediately; open-ended answers are only checked for presence. A forced
// submission (time ran out) is accepted even when empty.
func Evaluate(def Definition, ans Answers, forced bool) (Result, error) {
	switch def.Type {
	case TypeMCQ:
		return evaluateMCQ(def, ans), nil
	case TypeOpenEnded:
		if !forced && !hasAcceptedContent(def, ans) {
			return Result{}, ErrEmptySubmission
		}
		return Result{TotalPoints: def.TotalPoints, Answered: answeredOpenEnded(def, ans)}, nil
	default:
		return Result{}, ErrQuizTypeMismatch
	}
}

func evaluateMCQ(def Definition, ans Answers) Result {
	total := def.MCQTotalPoints()
	res := Result{TotalPoints: total, Graded: true}

	questions := make([]Question, len(def.Questions))
	copy(questions, def.Questions)
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Index < questions[j].Index })

	for _, q := range questions {
		qr := QuestionResult{Index: q.Index, Correct: q.CorrectOption(), Points: q.Points}
		if sel, ok := ans.Choices[q.Index]; ok && sel >= 0 && sel < len(q.Options) {
			s := sel
			qr.Selected = &s
			res.Answered++
			if sel == qr.Correct {
				qr.IsCorrect = true
				qr.Earned = q.Points
				res.Score += q.Points
			}
		}
		res.Questions = append(res.Questions, qr)
	}

	res.Percentage = Percentage(res.Score, total)
	res.Passed = Passed(res.Percentage, def.PassingScore)
	return res
}

func hasAcceptedContent(def Definition, ans Answers) bool {
	return answeredOpenEnded(def, ans) > 0
}

func answeredOpenEnded(def Definition, ans Answers) int {
	n := 0
	if def.AcceptTextAnswer && strings.TrimSpace(ans.Text) != "" {
		n++
	}
	if def.AcceptFileUpload && strings.TrimSpace(ans.FileURL) != "" {
		n++
	}
	return n
}

// CheckChoices reports answers that point at unknown questions or options.
func CheckChoices(def Definition, choices map[int]int) error {
	for qIdx, opt := range choices {
		q, ok := def.QuestionByIndex(qIdx)
		if !ok || opt < 0 || opt >= len(q.Options) {
			return ErrInvalidAnswer
		}
	}
	return nil
}
