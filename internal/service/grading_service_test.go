package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitText(t *testing.T, f *fixture, q model.Quiz, text string) uint {
	t.Helper()
	resp, err := f.submissions.Submit(context.Background(), student, dto.SubmitQuizRequest{
		QuizRef: refOf(q), QuizType: model.QuizTypeOpenEnded, TextAnswer: text,
	})
	require.NoError(t, err)
	return resp.SubmissionID
}

func gradeReq(q model.Quiz, id uint, score float64, feedback string) dto.GradeSubmissionRequest {
	return dto.GradeSubmissionRequest{QuizRef: refOf(q), SubmissionID: id, Score: &score, Feedback: feedback}
}

func TestGrade_RegradeKeepsHistory(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))
	id := submitText(t, f, q, "わたしはがくせいです。")

	queue, err := f.grading.ListSubmissions(ctx, refOf(q))
	require.NoError(t, err)
	require.Len(t, queue.Ungraded, 1)
	assert.Empty(t, queue.Graded)

	f.clock.Advance(time.Hour)
	first, err := f.grading.Grade(ctx, teacher, gradeReq(q, id, 10, "助詞に気をつけて"))
	require.NoError(t, err)
	require.NotNil(t, first.GradedScore)
	assert.Equal(t, 10.0, *first.GradedScore)
	assert.Equal(t, 50, first.Percentage)
	assert.False(t, first.Passed)

	f.clock.Advance(time.Hour)
	second, err := f.grading.Grade(ctx, teacher, gradeReq(q, id, 18, "よくできました"))
	require.NoError(t, err)
	assert.Equal(t, 18.0, *second.GradedScore)
	assert.Equal(t, 90, second.Percentage)
	assert.True(t, second.Passed)
	assert.Equal(t, "よくできました", second.Feedback)
	require.NotNil(t, second.GradedBy)
	assert.Equal(t, teacher.UserID, *second.GradedBy)
	require.NotNil(t, second.GradedAt)
	assert.True(t, t0.Add(2*time.Hour).Equal(*second.GradedAt))

	history, err := f.grading.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 18.0, history[0].Score)
	assert.Equal(t, 10.0, history[1].Score)
	assert.Equal(t, "助詞に気をつけて", history[1].Feedback)

	queue, err = f.grading.ListSubmissions(ctx, refOf(q))
	require.NoError(t, err)
	assert.Empty(t, queue.Ungraded)
	require.Len(t, queue.Graded, 1)

	require.Len(t, f.notifier.sent, 2)
	assert.False(t, f.notifier.sent[0].Regrade)
	assert.True(t, f.notifier.sent[1].Regrade)
	assert.Equal(t, "hana@example.com", f.notifier.sent[1].StudentEmail)
}

func TestGrade_RejectsInvalidScoresWithoutSideEffects(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))
	id := submitText(t, f, q, "こんにちは")

	for _, score := range []float64{-1, 20.5} {
		_, err := f.grading.Grade(ctx, teacher, gradeReq(q, id, score, "x"))
		requireErrorIs(t, err, quiz.ErrScoreOutOfRange)
	}

	sub, err := f.subs.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sub.GradedScore)
	assert.Equal(t, model.SubmissionStatusPendingGrading, sub.Status)
	history, err := f.grading.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, f.notifier.sent)

	_, err = f.grading.Grade(ctx, teacher, gradeReq(q, id, 20, "満点"))
	require.NoError(t, err)
}

func TestGrade_WrongQuizOrType(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	open := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))
	other := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 1))
	mcq := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))
	id := submitText(t, f, open, "こんにちは")

	_, err := f.grading.Grade(ctx, teacher, gradeReq(other, id, 5, ""))
	requireErrorIs(t, err, quiz.ErrSubmissionNotFound)

	_, err = f.grading.ListSubmissions(ctx, refOf(mcq))
	requireErrorIs(t, err, quiz.ErrNotGradable)

	_, err = f.grading.Grade(ctx, teacher, gradeReq(open, 999, 5, ""))
	requireErrorIs(t, err, quiz.ErrSubmissionNotFound)
}

func TestSuggest(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))
	id := submitText(t, f, q, "こんにちは")

	s, err := f.grading.Suggest(ctx, dto.SuggestGradeRequest{SubmissionID: id})
	require.NoError(t, err)
	assert.Equal(t, 17.0, s.Score)
	assert.Equal(t, 20.0, s.TotalPoints)
	assert.Equal(t, "よくできました", s.Feedback)

	sub, err := f.subs.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sub.GradedScore, "suggestions are never stored as grades")

	f.grading = NewGradingService(
		f.quizRepo, f.subs, f.notifier, stubLLM{err: errors.New("quota exceeded")}, f.clock,
	)
	_, err = f.grading.Suggest(ctx, dto.SuggestGradeRequest{SubmissionID: id})
	assert.Error(t, err)
}
