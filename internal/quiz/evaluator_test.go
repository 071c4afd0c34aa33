package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourQuestionQuiz() Definition {
	qs := make([]Question, 0, 4)
	for i := 0; i < 4; i++ {
		qs = append(qs, Question{
			Index:  i,
			Text:   "問題",
			Points: 25,
			Options: []Option{
				{Text: "あ"},
				{Text: "い", Correct: true},
				{Text: "う"},
			},
		})
	}
	return Definition{Type: TypeMCQ, TotalPoints: 100, PassingScore: 70, Questions: qs}
}

func TestEvaluate_MCQ(t *testing.T) {
	def := fourQuestionQuiz()

	tests := []struct {
		name        string
		choices     map[int]int
		wantScore   float64
		wantPercent int
		wantPassed  bool
		wantAnswers int
	}{
		{name: "all correct", choices: map[int]int{0: 1, 1: 1, 2: 1, 3: 1}, wantScore: 100, wantPercent: 100, wantPassed: true, wantAnswers: 4},
		{name: "half correct", choices: map[int]int{0: 1, 1: 1, 2: 0, 3: 2}, wantScore: 50, wantPercent: 50, wantPassed: false, wantAnswers: 4},
		{name: "three correct one blank", choices: map[int]int{0: 1, 1: 1, 2: 1}, wantScore: 75, wantPercent: 75, wantPassed: true, wantAnswers: 3},
		{name: "empty", choices: map[int]int{}, wantScore: 0, wantPercent: 0, wantPassed: false, wantAnswers: 0},
		{name: "out of range option ignored", choices: map[int]int{0: 9, 1: 1}, wantScore: 25, wantPercent: 25, wantAnswers: 1},
		{name: "unknown question ignored", choices: map[int]int{42: 1}, wantScore: 0, wantPercent: 0, wantAnswers: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(def, Answers{Choices: tt.choices}, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, 100.0, res.TotalPoints)
			assert.Equal(t, tt.wantPercent, res.Percentage)
			assert.Equal(t, tt.wantPassed, res.Passed)
			assert.Equal(t, tt.wantAnswers, res.Answered)
			assert.True(t, res.Graded)
			assert.Len(t, res.Questions, 4)
			assert.Equal(t, res.Passed, res.Percentage >= def.PassingScore)
		})
	}
}

func TestEvaluate_MCQ_WeightedRounding(t *testing.T) {
	def := Definition{
		Type:         TypeMCQ,
		TotalPoints:  3,
		PassingScore: 67,
		Questions: []Question{
			{Index: 0, Points: 1, Options: []Option{{Correct: true}, {}}},
			{Index: 1, Points: 1, Options: []Option{{Correct: true}, {}}},
			{Index: 2, Points: 1, Options: []Option{{Correct: true}, {}}},
		},
	}
	res, err := Evaluate(def, Answers{Choices: map[int]int{0: 0, 1: 0, 2: 1}}, false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Score)
	assert.Equal(t, 67, res.Percentage)
	assert.True(t, res.Passed)

	q := res.Questions[2]
	require.NotNil(t, q.Selected)
	assert.Equal(t, 1, *q.Selected)
	assert.Equal(t, 0, q.Correct)
	assert.False(t, q.IsCorrect)
}

func TestEvaluate_OpenEnded(t *testing.T) {
	textOnly := Definition{Type: TypeOpenEnded, TotalPoints: 10, PassingScore: 60, AcceptTextAnswer: true}
	fileOnly := Definition{Type: TypeOpenEnded, TotalPoints: 10, PassingScore: 60, AcceptFileUpload: true}

	tests := []struct {
		name    string
		def     Definition
		ans     Answers
		forced  bool
		wantErr error
	}{
		{name: "text accepted", def: textOnly, ans: Answers{Text: "私は学生です"}},
		{name: "blank text rejected", def: textOnly, ans: Answers{Text: "   "}, wantErr: ErrEmptySubmission},
		{name: "file ignored when only text accepted", def: textOnly, ans: Answers{FileURL: "https://files/x.pdf"}, wantErr: ErrEmptySubmission},
		{name: "file accepted", def: fileOnly, ans: Answers{FileURL: "https://files/x.pdf"}},
		{name: "forced empty accepted", def: textOnly, ans: Answers{}, forced: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(tt.def, tt.ans, tt.forced)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, res.Graded)
			assert.Equal(t, 10.0, res.TotalPoints)
			assert.Zero(t, res.Score)
		})
	}
}

func TestCheckChoices(t *testing.T) {
	def := fourQuestionQuiz()
	assert.NoError(t, CheckChoices(def, map[int]int{0: 2, 3: 0}))
	assert.ErrorIs(t, CheckChoices(def, map[int]int{7: 0}), ErrInvalidAnswer)
	assert.ErrorIs(t, CheckChoices(def, map[int]int{0: 3}), ErrInvalidAnswer)
	assert.ErrorIs(t, CheckChoices(def, map[int]int{0: -1}), ErrInvalidAnswer)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 13, Percentage(1, 8)) // 12.5 rounds up
}

func TestAnswers_Empty(t *testing.T) {
	assert.True(t, Answers{}.Empty())
	assert.True(t, Answers{Choices: map[int]int{}, Text: "  "}.Empty())
	assert.False(t, Answers{Choices: map[int]int{0: 1}}.Empty())
	assert.False(t, Answers{FileURL: "https://cdn.example.com/a.png"}.Empty())
}
