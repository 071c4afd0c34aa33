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

func TestSubmit_MCQIsScoredImmediately(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	f.clock.Advance(90 * time.Second)

	resp, err := f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1, 1: 1, 2: 0, 7: 1}))
	require.NoError(t, err)
	require.NotNil(t, resp.Score)
	assert.True(t, resp.Success)
	assert.Equal(t, 50.0, *resp.Score)
	assert.Equal(t, 50, *resp.Percentage)
	assert.False(t, *resp.Passed)
	assert.Equal(t, "F", resp.Grade)
	assert.Equal(t, 3, resp.Answered)
	assert.Equal(t, 90, resp.TimeSpent)
	assert.Equal(t, 1, resp.AttemptNumber)
	assert.Equal(t, model.SubmissionStatusGraded, resp.Status)

	stored, err := f.sessions.FindByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateSubmitted), stored.State)

	sub, err := f.subs.FindByID(ctx, resp.SubmissionID)
	require.NoError(t, err)
	require.NotNil(t, sub.SessionID)
	assert.Equal(t, session.SessionID, *sub.SessionID)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 0, 7: 1}, sub.Choices.Data())
}

func TestSubmit_SingleAttemptRejectsSecondSubmission(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	_, err := f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1}))
	require.NoError(t, err)

	_, err = f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1, 1: 1}))
	requireErrorIs(t, err, quiz.ErrAlreadySubmitted)

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateAlreadyCompleted), session.State)
	assert.Empty(t, session.SessionID)

	count, err := f.subs.CountByQuizAndStudent(ctx, q.ID, student.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmit_SameSessionTwice(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.AllowMultipleAttempts = true
	q := f.save(t, mq)

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	req := mcqSubmit(q, map[int]int{0: 1})
	req.SessionID = session.SessionID
	_, err = f.submissions.Submit(ctx, student, req)
	require.NoError(t, err)

	_, err = f.submissions.Submit(ctx, student, req)
	requireErrorIs(t, err, quiz.ErrAlreadySubmitted)

	count, err := f.subs.CountByQuizAndStudent(ctx, q.ID, student.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "a session yields at most one submission")
}

func TestSubmit_ClaimedSessionIsPending(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	ok, err := f.sessions.Transition(ctx, session.SessionID, string(quiz.StateInProgress), string(quiz.StateSubmitting), nil)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1}))
	requireErrorIs(t, err, quiz.ErrSubmissionPending)
}

func TestSubmit_TimeLimitEnforcedServerSide(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		wantErr   error
		wantSpent int
	}{
		{"on time", 45 * time.Second, nil, 45},
		{"within grace", 85 * time.Second, nil, 60},
		{"past grace", 91 * time.Second, quiz.ErrTimeLimitExceeded, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			ctx := context.Background()
			mq := testutil.MCQQuiz(f.course.ID, 0, 0)
			mq.TimeLimit = testutil.IntPtr(1)
			q := f.save(t, mq)

			_, err := f.attempts.Start(ctx, student, refOf(q))
			require.NoError(t, err)
			f.clock.Advance(tt.elapsed)

			resp, err := f.submissions.Submit(ctx, student, mcqSubmit(q, map[int]int{0: 1}))
			if tt.wantErr != nil {
				requireErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSpent, resp.TimeSpent)
		})
	}
}

func TestSubmit_TimedQuizNeedsStart(t *testing.T) {
	f := newFixture(t, false)
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.TimeLimit = testutil.IntPtr(5)
	q := f.save(t, mq)

	_, err := f.submissions.Submit(context.Background(), student, mcqSubmit(q, map[int]int{0: 1}))
	requireErrorIs(t, err, quiz.ErrSessionNotFound)
}

func TestSubmit_ClientStartedAtCanOnlyMoveStartEarlier(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.AllowMultipleAttempts = true
	q := f.save(t, mq)

	_, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	f.clock.Advance(30 * time.Second)

	earlier := t0.Add(-10 * time.Second)
	req := mcqSubmit(q, map[int]int{0: 1})
	req.StartedAt = &earlier
	resp, err := f.submissions.Submit(ctx, student, req)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.TimeSpent)

	_, err = f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)
	f.clock.Advance(20 * time.Second)

	later := f.clock.Now()
	req.StartedAt = &later
	resp, err = f.submissions.Submit(ctx, student, req)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.TimeSpent)
	assert.Equal(t, 2, resp.AttemptNumber)
}

func TestSubmit_QuizTypeMismatch(t *testing.T) {
	f := newFixture(t, false)
	q := f.save(t, testutil.MCQQuiz(f.course.ID, 0, 0))

	req := mcqSubmit(q, nil)
	req.QuizType = model.QuizTypeOpenEnded
	_, err := f.submissions.Submit(context.Background(), student, req)
	requireErrorIs(t, err, quiz.ErrQuizTypeMismatch)
}

func TestSubmit_OpenEnded(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	q := f.save(t, testutil.OpenEndedQuiz(f.course.ID, 1, 0))

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	req := dto.SubmitQuizRequest{QuizRef: refOf(q), QuizType: model.QuizTypeOpenEnded, TextAnswer: "   "}
	_, err = f.submissions.Submit(ctx, student, req)
	requireErrorIs(t, err, quiz.ErrEmptySubmission)

	stored, err := f.sessions.FindByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateInProgress), stored.State, "a rejected submission leaves the attempt open")

	req.TextAnswer = "はじめまして。アナです。"
	resp, err := f.submissions.Submit(ctx, student, req)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusPendingGrading, resp.Status)
	assert.Nil(t, resp.Score)
	assert.Nil(t, resp.Percentage)

	sub, err := f.subs.FindByID(ctx, resp.SubmissionID)
	require.NoError(t, err)
	assert.Nil(t, sub.GradedScore)
	assert.Equal(t, "はじめまして。アナです。", sub.TextAnswer)
	assert.Equal(t, "hana@example.com", sub.StudentEmail)
}

func TestSubmitExpired_AutoSubmitsAfterCountdown(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.TimeLimit = testutil.IntPtr(1)
	q := f.save(t, mq)

	session, err := f.attempts.Start(ctx, student, refOf(q))
	require.NoError(t, err)

	for i := 0; i < 59; i++ {
		f.clock.Advance(time.Second)
		n, err := f.submissions.SubmitExpired(ctx)
		require.NoError(t, err)
		require.Zero(t, n, "nothing expires before the limit (tick %d)", i+1)
	}
	f.clock.Advance(time.Second)
	n, err := f.submissions.SubmitExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	subs, err := f.subs.ListByQuizAndStudent(ctx, q.ID, student.UserID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 0.0, subs[0].Score)
	assert.Equal(t, 0, subs[0].Percentage)
	assert.False(t, subs[0].Passed)
	assert.True(t, subs[0].AutoSubmitted)
	assert.Equal(t, 60, subs[0].TimeSpent)

	stored, err := f.sessions.FindByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(quiz.StateSubmitted), stored.State)

	n, err = f.submissions.SubmitExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubmitExpired_UsesDraftAnswers(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	oq := testutil.OpenEndedQuiz(f.course.ID, 1, 0)
	oq.TimeLimit = testutil.IntPtr(2)
	open := f.save(t, oq)
	mq := testutil.MCQQuiz(f.course.ID, 0, 0)
	mq.TimeLimit = testutil.IntPtr(2)
	mcq := f.save(t, mq)

	s1, err := f.attempts.Start(ctx, student, refOf(mcq))
	require.NoError(t, err)
	s2, err := f.attempts.Start(ctx, student, refOf(open))
	require.NoError(t, err)

	for qi, opt := range map[int]int{0: 1, 1: 1, 2: 1} {
		qi, opt := qi, opt
		_, err := f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s1.SessionID, QuestionIndex: &qi, OptionIndex: &opt})
		require.NoError(t, err)
	}
	text := "わたしは"
	_, err = f.attempts.SaveAnswer(ctx, student, dto.SaveAnswerRequest{SessionID: s2.SessionID, TextAnswer: &text})
	require.NoError(t, err)

	f.clock.Advance(2 * time.Minute)
	n, err := f.submissions.SubmitExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mcqSubs, err := f.subs.ListByQuizAndStudent(ctx, mcq.ID, student.UserID)
	require.NoError(t, err)
	require.Len(t, mcqSubs, 1)
	assert.Equal(t, 75.0, mcqSubs[0].Score)
	assert.True(t, mcqSubs[0].Passed)

	openSubs, err := f.subs.ListByQuizAndStudent(ctx, open.ID, student.UserID)
	require.NoError(t, err)
	require.Len(t, openSubs, 1)
	assert.Equal(t, "わたしは", openSubs[0].TextAnswer)
	assert.Equal(t, model.SubmissionStatusPendingGrading, openSubs[0].Status)
}

func TestTimeSpent(t *testing.T) {
	timed := quiz.Definition{TimeLimit: testutil.IntPtr(1)}
	assert.Equal(t, 30, timeSpent(t0, t0.Add(30*time.Second), timed))
	assert.Equal(t, 60, timeSpent(t0, t0.Add(5*time.Minute), timed))
	assert.Equal(t, 0, timeSpent(t0, t0.Add(-time.Second), quiz.Definition{}))
	assert.Equal(t, 300, timeSpent(t0, t0.Add(5*time.Minute), quiz.Definition{}))
}
