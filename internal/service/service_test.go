package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Nihongo/config"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/lshigami/Nihongo/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

var (
	student = identity.Identity{UserID: "student-1", Email: "hana@example.com", Role: identity.RoleStudent}
	teacher = identity.Identity{UserID: "teacher-1", Email: "sensei@example.com", Role: identity.RoleAdmin}
)

type recordingNotifier struct {
	sent []GradeNotification
}

func (r *recordingNotifier) NotifyGraded(n GradeNotification) { r.sent = append(r.sent, n) }

func (r *recordingNotifier) Close(context.Context) error { return nil }

type stubLLM struct {
	feedback string
	score    float64
	err      error
}

func (s stubLLM) SuggestGrade(context.Context, *model.Quiz, *model.Submission) (string, float64, error) {
	return s.feedback, s.score, s.err
}

type fixture struct {
	db          *gorm.DB
	clock       *testutil.Clock
	course      model.Course
	quizRepo    repository.QuizRepository
	sessions    repository.AttemptSessionRepository
	subs        repository.SubmissionRepository
	notifier    *recordingNotifier
	quizzes     QuizService
	admin       AdminQuizService
	attempts    AttemptService
	submissions SubmissionService
	results     ResultsService
	grading     GradingService
}

func newFixture(t *testing.T, showAnswers bool) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	clock := testutil.NewClock(t0)
	cfg := &config.Config{}
	cfg.Quiz.SubmitGrace = 30 * time.Second

	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	sessionRepo := repository.NewAttemptSessionRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	sc := NewScoreConverterService()
	notifier := &recordingNotifier{}

	submissions := NewSubmissionService(quizRepo, sessionRepo, subRepo, sc, clock, cfg)
	return &fixture{
		db:          db,
		clock:       clock,
		course:      testutil.CreateCourse(t, db, showAnswers),
		quizRepo:    quizRepo,
		sessions:    sessionRepo,
		subs:        subRepo,
		notifier:    notifier,
		quizzes:     NewQuizService(quizRepo),
		admin:       NewAdminQuizService(courseRepo, quizRepo),
		attempts:    NewAttemptService(quizRepo, sessionRepo, subRepo, submissions, clock),
		submissions: submissions,
		results:     NewResultsService(quizRepo, subRepo, sc),
		grading:     NewGradingService(quizRepo, subRepo, notifier, stubLLM{feedback: "よくできました", score: 17}, clock),
	}
}

func (f *fixture) save(t *testing.T, q model.Quiz) model.Quiz {
	t.Helper()
	return testutil.SaveQuiz(t, f.db, q)
}

func refOf(q model.Quiz) dto.QuizRef {
	m, i := q.ModuleIndex, q.ItemIndex
	return dto.QuizRef{CourseID: q.CourseID, ModuleIndex: &m, ItemIndex: &i}
}

func mcqSubmit(q model.Quiz, answers map[int]int) dto.SubmitQuizRequest {
	return dto.SubmitQuizRequest{QuizRef: refOf(q), QuizType: model.QuizTypeMCQ, Answers: answers}
}

func requireErrorIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "expected %v, got %v", target, err)
}
