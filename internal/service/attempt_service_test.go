package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func TestStart_CreatesAndResumesSession(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.TimeLimit = testutil.IntPtr(10)
	q := f.save(t, mq)

	first, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateInProgress), first.State)
	assert.Equal(t, 1, first.AttemptNumber)
	require.NotNil(t, first.RemainingSeconds)
	assert.Equal(t, 600, *first.RemainingSeconds)
	require.NotNil(t, first.Deadline)
	assert.True(t, t0.Add(10*time.Minute).Equal(*first.Deadline))

	require.NotNil(t, first.Quiz)
	assert.Len(t, first.Quiz.Questions, 4)

	f.clock.Advance(4 * time.Minute)
	resumed, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, resumed.SessionID)
	assert.Equal(t, 360, *resumed.RemainingSeconds)
}

func TestStart_ExpiredSessionIsSubmittedOnReturn(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.TimeLimit = testutil.IntPtr(1)
	q := f.save(t, mq)

	first, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	_, err = f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: first.SessionID, QuestionIndex: intp(0), OptionIndex: intp(1)})
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)
	again, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateAlreadyCompleted), again.State)

	subs, err := f.subs.ListByQuizAndStudent(ctx, q.ID, student.UserID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].AutoSubmitted)
	assert.Equal(t, 25.0, subs[0].Score)
}

func TestSaveAnswer_Validation(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	s, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     dto.SaveAnswerRequest
		who     string
		wantErr error
	}{
		{"unknown question", dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(9), OptionIndex: intp(0)}, student.UserID, quiz.ErrInvalidAnswer},
		{"unknown option", dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(0), OptionIndex: intp(3)}, student.UserID, quiz.ErrInvalidAnswer},
		{"missing option", dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(0)}, student.UserID, quiz.ErrInvalidAnswer},
		{"someone else's session", dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(0), OptionIndex: intp(1)}, "student-2", quiz.ErrSessionNotFound},
		{"unknown session", dto.SaveAnswerRequest{SessionID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427", QuestionIndex: intp(0), OptionIndex: intp(1)}, student.UserID, quiz.ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			who := student
			who.UserID = tt.who
			_, err := f.attempts.SaveAnswer(ctx, who, tt.req)
			requireErrorIs(t, err, tt.wantErr)
		})
	}

	resp, err := f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(2), OptionIndex: intp(0)})
	require.NoError(t, err)
	resp, err = f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(2), OptionIndex: intp(1)})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 1}, resp.Answers)

	_, err = f.submissions.Submit(ctx, student, mcqSubmit(q, resp.Answers))
	require.NoError(t, err)
	_, err = f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s.SessionID, QuestionIndex: intp(0), OptionIndex: intp(1)})
	requireErrorIs(t, err, quiz.ErrAlreadySubmitted)
}

func TestSaveAnswer_OpenEndedRespectsAcceptedInputs(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))

	s, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	url := "https://files.example.com/answer.png"
	_, err = f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s.SessionID, FileURL: &url})
	requireErrorIs(t, err, quiz.ErrInvalidAnswer)

	text := "よろしくおねがいします"
	resp, err := f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s.SessionID, TextAnswer: &text})
	require.NoError(t, err)
	assert.Equal(t, text, resp.TextAnswer)
	assert.Nil(t, resp.RemainingSeconds)
}

func TestRecordIntegrityEvent_CountersReachSubmission(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	s, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	events := []string{"tab_hidden", "copy", "tab_hidden", "paste", "context_menu"}
	var last *dto.IntegrityResponse
	for _, e := range events {
		last, err = f.attempts.RecordIntegrityEvent(ctx, student, dto.IntegrityEventRequest{SessionID: s.SessionID, Event: e})
		require.NoError(t, err)
		assert.NotEmpty(t, last.Warning)
	}
	assert.Equal(t, 2, last.TabSwitches)
	assert.Equal(t, 2, last.ClipboardEvents)
	assert.Equal(t, 1, last.ContextMenuEvents)

	resp, err := f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1}))
	require.NoError(t, err)
	sub, err := f.subs.FindByID(ctx, resp.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.TabSwitches)
	assert.Equal(t, 2, sub.ClipboardEvents)

	_, err = f.attempts.RecordIntegrityEvent(ctx, student, dto.IntegrityEventRequest{SessionID: s.SessionID, Event: "copy"})
	requireErrorIs(t, err, quiz.ErrAlreadySubmitted)
}

func TestQuizService_StripsAnswerKey(t *testing.T) {
	f := newFixture(t, true)
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	view, err := f.quizzes.GetQuiz(context.Background(), refOf(q))
	require.NoError(t, err)
	assert.Equal(t, model.QuizTypeMCQ, view.QuizType)
	require.Len(t, view.Questions, 4)
	assert.Equal(t, []dto.OptionView{{Text: "ka"}, {Text: "correct"}, {Text: "sa"}}, view.Questions[0].Options)

	m := 5
	_, err = f.quizzes.GetQuiz(context.Background(), dto.QuizRef{CourseID: f.course.ID, ModuleIndex: &m, ItemIndex: &m})
	requireErrorIs(t, err, quiz.ErrQuizNotFound)
}
