package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Nihongo/config"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	expiredBatchSize = 100
	// a claim older than this belongs to a submit that died mid-flight
	staleClaimAfter = 2 * time.Minute
	// bound for session writes that must land even when the request is gone
	sessionWriteTimeout = 5 * time.Second
)

// SubmissionService evaluates answers and persists them as submissions.
type SubmissionService interface {
	Submit(ctx context.Context, who identity.Identity, req dto.SubmitQuizRequest) (*dto.SubmitResponse, error)
	// FinalizeExpired submits an expired session with its draft answers.
	FinalizeExpired(ctx context.Context, session *model.AttemptSession) (*dto.SubmitResponse, error)
	// SubmitExpired reclaims abandoned submits, then finalizes every expired
	// session and reports how many were submitted.
	SubmitExpired(ctx context.Context) (int, error)
}

type submissionService struct {
	quizRepo       repository.QuizRepository
	sessionRepo    repository.AttemptSessionRepository
	submissionRepo repository.SubmissionRepository
	scoreConverter ScoreConverterService
	clock          quiz.Clock
	grace          time.Duration
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	sessionRepo repository.AttemptSessionRepository,
	submissionRepo repository.SubmissionRepository,
	scoreConverter ScoreConverterService,
	clock quiz.Clock,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		quizRepo:       quizRepo,
		sessionRepo:    sessionRepo,
		submissionRepo: submissionRepo,
		scoreConverter: scoreConverter,
		clock:          clock,
		grace:          cfg.Quiz.SubmitGrace,
	}
}

// attempt is everything needed to turn answers into a submission.
type attempt struct {
	quiz      *model.Quiz
	def       quiz.Definition
	session   *model.AttemptSession // nil for untimed quizzes submitted without /start
	studentID string
	email     string
	answers   quiz.Answers
	startedAt time.Time
	forced    bool
}

func (s *submissionService) Submit(ctx context.Context, who identity.Identity, req dto.SubmitQuizRequest) (*dto.SubmitResponse, error) {
	q, err := loadQuiz(ctx, s.quizRepo, req.QuizRef)
	if err != nil {
		return nil, err
	}
	def := toDefinition(q)
	if quiz.Type(req.QuizType) != def.Type {
		return nil, quiz.ErrQuizTypeMismatch
	}

	now := s.clock.Now()
	session, err := s.findSession(ctx, who, q.ID, req.SessionID)
	if err != nil {
		return nil, err
	}

	a := attempt{
		quiz:      q,
		def:       def,
		session:   session,
		studentID: who.UserID,
		email:     who.Email,
		answers:   quiz.Answers{Choices: req.Answers, Text: req.TextAnswer, FileURL: req.FileURL},
		startedAt: now,
	}
	if session == nil {
		if def.Timed() {
			// timed quizzes need a server-side start time
			return nil, quiz.ErrSessionNotFound
		}
	} else {
		state := restoreSession(session)
		if state.State.Terminal() {
			return nil, quiz.ErrAlreadySubmitted
		}
		if !state.AcceptsAt(now, s.grace) {
			log.Warn().Str("sessionID", session.ID).Str("studentID", who.UserID).Time("deadline", *session.Deadline).Msg("Rejected late submission")
			return nil, quiz.ErrTimeLimitExceeded
		}
		a.startedAt = session.StartedAt
		if a.answers.Empty() {
			// nothing in the request; submit what was saved through /answer
			a.answers = draftOf(session)
		}
	}
	// the client may only move the start earlier, never extend the limit
	if req.StartedAt != nil && req.StartedAt.Before(a.startedAt) {
		a.startedAt = req.StartedAt.UTC()
	}
	if a.answers.Choices == nil {
		a.answers.Choices = map[int]int{}
	}

	return s.finalize(ctx, a)
}

func (s *submissionService) findSession(ctx context.Context, who identity.Identity, quizID uint, sessionID string) (*model.AttemptSession, error) {
	if sessionID != "" {
		session, err := s.sessionRepo.FindByID(ctx, sessionID)
		if err != nil {
			return nil, notFound(err, quiz.ErrSessionNotFound)
		}
		if session.StudentID != who.UserID || session.QuizID != quizID {
			return nil, quiz.ErrSessionNotFound
		}
		return session, nil
	}
	session, err := s.sessionRepo.FindOpen(ctx, quizID, who.UserID)
	if err != nil {
		if err = notFound(err, quiz.ErrSessionNotFound); err == quiz.ErrSessionNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up attempt session: %w", err)
	}
	return session, nil
}

func (s *submissionService) FinalizeExpired(ctx context.Context, session *model.AttemptSession) (*dto.SubmitResponse, error) {
	q, err := s.quizRepo.FindByID(ctx, session.QuizID)
	if err != nil {
		return nil, notFound(err, quiz.ErrQuizNotFound)
	}
	return s.finalize(ctx, attempt{
		quiz:      q,
		def:       toDefinition(q),
		session:   session,
		studentID: session.StudentID,
		email:     session.StudentEmail,
		answers:   draftOf(session),
		startedAt: session.StartedAt,
		forced:    true,
	})
}

func (s *submissionService) SubmitExpired(ctx context.Context) (int, error) {
	s.reclaimStale(ctx)

	sessions, err := s.sessionRepo.FindExpired(ctx, s.clock.Now(), expiredBatchSize)
	if err != nil {
		return 0, fmt.Errorf("error listing expired sessions: %w", err)
	}
	submitted := 0
	for i := range sessions {
		_, err := s.FinalizeExpired(ctx, &sessions[i])
		switch {
		case err == nil:
			submitted++
		case errors.Is(err, quiz.ErrAlreadySubmitted), errors.Is(err, quiz.ErrSubmissionPending):
			// someone else got there first
		default:
			log.Error().Err(err).Str("sessionID", sessions[i].ID).Msg("Auto-submit of expired session failed")
		}
	}
	return submitted, nil
}

// reclaimStale settles sessions stuck in submitting. A session whose
// submission was stored is marked submitted; any other goes back to
// in_progress so the student can resubmit or the sweep can expire it.
func (s *submissionService) reclaimStale(ctx context.Context) {
	sessions, err := s.sessionRepo.FindStaleClaims(ctx, s.clock.Now().Add(-staleClaimAfter), expiredBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale submitting sessions")
		return
	}
	for i := range sessions {
		session := &sessions[i]
		to := quiz.StateInProgress
		var submittedAt *time.Time

		sub, err := s.submissionRepo.FindBySessionID(ctx, session.ID)
		switch {
		case err == nil:
			to, submittedAt = quiz.StateSubmitted, &sub.SubmittedAt
		case notFound(err, quiz.ErrSubmissionNotFound) != quiz.ErrSubmissionNotFound:
			log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to look up submission for stale session")
			continue
		}

		ok, err := s.sessionRepo.Transition(ctx, session.ID, string(quiz.StateSubmitting), string(to), submittedAt)
		if err != nil {
			log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to reclaim stale submitting session")
			continue
		}
		if ok {
			log.Warn().Str("sessionID", session.ID).Str("to", string(to)).Msg("Reclaimed stale submitting session")
		}
	}
}

// finalize claims the session, evaluates the answers and stores the submission.
// Any failure before the insert puts the session back to in_progress.
func (s *submissionService) finalize(ctx context.Context, a attempt) (*dto.SubmitResponse, error) {
	if a.session != nil {
		if err := s.claim(ctx, a.session); err != nil {
			return nil, err
		}
	}

	result, err := quiz.Evaluate(a.def, a.answers, a.forced)
	if err != nil {
		s.release(ctx, a.session, quiz.StateInProgress)
		return nil, err
	}

	now := s.clock.Now()
	sub := s.buildSubmission(a, result, now)
	if err := s.submissionRepo.CreateAttempt(ctx, sub, !a.def.AllowMultipleAttempts); err != nil {
		if errors.Is(err, quiz.ErrAlreadySubmitted) {
			s.release(ctx, a.session, quiz.StateAlreadyCompleted)
			return nil, err
		}
		s.release(ctx, a.session, quiz.StateInProgress)
		log.Error().Err(err).Uint("quizID", a.quiz.ID).Str("studentID", a.studentID).Msg("Failed to persist submission")
		return nil, fmt.Errorf("database error saving submission: %w", err)
	}

	if a.session != nil {
		wctx, cancel := s.detached(ctx)
		ok, err := s.sessionRepo.Transition(wctx, a.session.ID, string(quiz.StateSubmitting), string(quiz.StateSubmitted), &now)
		cancel()
		if err != nil || !ok {
			// the submission is stored; a stale session state only affects resume
			log.Error().Err(err).Str("sessionID", a.session.ID).Msg("Failed to mark session submitted")
		}
	}

	log.Info().
		Uint("quizID", a.quiz.ID).
		Uint("submissionID", sub.ID).
		Str("studentID", a.studentID).
		Int("attempt", sub.AttemptNumber).
		Bool("autoSubmitted", a.forced).
		Str("status", sub.Status).
		Msg("Quiz submitted")

	return s.toSubmitResponse(sub, result), nil
}

// claim moves the session in_progress -> submitting. Only one caller wins.
func (s *submissionService) claim(ctx context.Context, session *model.AttemptSession) error {
	state := restoreSession(session)
	if err := state.BeginSubmit(); err != nil {
		return err
	}
	ok, err := s.sessionRepo.Claim(ctx, session.ID, s.clock.Now())
	if err != nil {
		return fmt.Errorf("error claiming attempt session: %w", err)
	}
	if ok {
		session.State = string(quiz.StateSubmitting)
		return nil
	}

	current, err := s.sessionRepo.FindByID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("error reloading attempt session: %w", err)
	}
	if quiz.State(current.State).Terminal() {
		return quiz.ErrAlreadySubmitted
	}
	return quiz.ErrSubmissionPending
}

func (s *submissionService) release(ctx context.Context, session *model.AttemptSession, to quiz.State) {
	if session == nil {
		return
	}
	wctx, cancel := s.detached(ctx)
	defer cancel()
	if _, err := s.sessionRepo.Transition(wctx, session.ID, string(quiz.StateSubmitting), string(to), nil); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Str("to", string(to)).Msg("Failed to release attempt session")
		return
	}
	session.State = string(to)
}

// detached keeps request values but not its cancellation, so a client that
// hangs up mid-submit cannot leave the session claimed.
func (s *submissionService) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sessionWriteTimeout)
}

func (s *submissionService) buildSubmission(a attempt, result quiz.Result, now time.Time) *model.Submission {
	sub := &model.Submission{
		QuizID:        a.quiz.ID,
		CourseID:      a.quiz.CourseID,
		ModuleIndex:   a.quiz.ModuleIndex,
		ItemIndex:     a.quiz.ItemIndex,
		StudentID:     a.studentID,
		StudentEmail:  a.email,
		QuizType:      a.quiz.QuizType,
		TotalPoints:   result.TotalPoints,
		StartedAt:     a.startedAt,
		SubmittedAt:   now,
		TimeSpent:     timeSpent(a.startedAt, now, a.def),
		AutoSubmitted: a.forced,
	}

	switch a.def.Type {
	case quiz.TypeMCQ:
		sub.Choices = datatypes.NewJSONType(a.answers.Choices)
		sub.Score = result.Score
		sub.Percentage = result.Percentage
		sub.Passed = result.Passed
		sub.Status = model.SubmissionStatusGraded
	case quiz.TypeOpenEnded:
		sub.Choices = datatypes.NewJSONType(map[int]int{})
		sub.TextAnswer = a.answers.Text
		sub.FileURL = a.answers.FileURL
		sub.Status = model.SubmissionStatusPendingGrading
	}

	if a.session != nil {
		id := a.session.ID
		sub.SessionID = &id
		sub.TabSwitches = a.session.TabSwitches
		sub.ClipboardEvents = a.session.ClipboardEvents
	}
	return sub
}

// timeSpent is capped at the time limit for timed quizzes.
func timeSpent(startedAt, submittedAt time.Time, def quiz.Definition) int {
	d := submittedAt.Sub(startedAt)
	if limit := def.TimeLimitDuration(); limit > 0 && d > limit {
		d = limit
	}
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (s *submissionService) toSubmitResponse(sub *model.Submission, result quiz.Result) *dto.SubmitResponse {
	resp := &dto.SubmitResponse{
		Success:       true,
		SubmissionID:  sub.ID,
		AttemptNumber: sub.AttemptNumber,
		Status:        sub.Status,
		TotalPoints:   sub.TotalPoints,
		Answered:      result.Answered,
		TimeSpent:     sub.TimeSpent,
		AutoSubmitted: sub.AutoSubmitted,
		SubmittedAt:   sub.SubmittedAt,
	}
	if sub.IsGraded() {
		score, pct, passed := sub.Score, sub.Percentage, sub.Passed
		resp.Score = &score
		resp.Percentage = &pct
		resp.Passed = &passed
		if letter, err := s.scoreConverter.ToLetterGrade(pct); err == nil {
			resp.Grade = letter
		}
	}
	return resp
}
