package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService drives the server-side attempt session: start or resume,
// draft answers and integrity events.
type AttemptService interface {
	Start(ctx context.Context, who identity.Identity, ref dto.QuizRef) (*dto.SessionResponse, error)
	SaveAnswer(ctx context.Context, who identity.Identity, req dto.SaveAnswerRequest) (*dto.SessionResponse, error)
	RecordIntegrityEvent(ctx context.Context, who identity.Identity, req dto.IntegrityEventRequest) (*dto.IntegrityResponse, error)
}

type attemptService struct {
	quizRepo       repository.QuizRepository
	sessionRepo    repository.AttemptSessionRepository
	submissionRepo repository.SubmissionRepository
	submissions    SubmissionService
	clock          quiz.Clock
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	sessionRepo repository.AttemptSessionRepository,
	submissionRepo repository.SubmissionRepository,
	submissions SubmissionService,
	clock quiz.Clock,
) AttemptService {
	return &attemptService{
		quizRepo:       quizRepo,
		sessionRepo:    sessionRepo,
		submissionRepo: submissionRepo,
		submissions:    submissions,
		clock:          clock,
	}
}

func (s *attemptService) Start(ctx context.Context, who identity.Identity, ref dto.QuizRef) (*dto.SessionResponse, error) {
	q, err := loadQuiz(ctx, s.quizRepo, ref)
	if err != nil {
		return nil, err
	}
	def := toDefinition(q)
	now := s.clock.Now()

	open, err := s.sessionRepo.FindOpen(ctx, q.ID, who.UserID)
	switch {
	case err == nil:
		if open.State == string(quiz.StateSubmitting) {
			// a submit is in flight or died; the sweep settles it
			return nil, quiz.ErrSubmissionPending
		}
		if !restoreSession(open).Expired(now) {
			log.Info().Str("sessionID", open.ID).Str("studentID", who.UserID).Msg("Resuming attempt session")
			return s.sessionView(q, open)
		}
		// the countdown ran out while the student was away
		if _, err := s.submissions.FinalizeExpired(ctx, open); err != nil &&
			!errors.Is(err, quiz.ErrAlreadySubmitted) && !errors.Is(err, quiz.ErrSubmissionPending) {
			return nil, err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Uint("quizID", q.ID).Msg("Failed to look up open attempt session")
		return nil, fmt.Errorf("error looking up attempt session: %w", err)
	}

	prior, err := s.submissionRepo.CountByQuizAndStudent(ctx, q.ID, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("error counting submissions: %w", err)
	}

	state := quiz.NewSession()
	if err := state.Begin(def, now, int(prior)); err != nil {
		return nil, err
	}
	if state.State == quiz.StateAlreadyCompleted {
		view, err := toQuizView(q)
		if err != nil {
			return nil, err
		}
		return &dto.SessionResponse{State: string(state.State), Quiz: &view}, nil
	}

	session := &model.AttemptSession{
		QuizID:        q.ID,
		StudentID:     who.UserID,
		StudentEmail:  who.Email,
		State:         string(state.State),
		AttemptNumber: int(prior) + 1,
		StartedAt:     state.StartedAt,
		Deadline:      state.Deadline,
	}
	storeDraft(session, state.Draft)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Error().Err(err).Uint("quizID", q.ID).Str("studentID", who.UserID).Msg("Failed to create attempt session")
		return nil, fmt.Errorf("database error starting quiz: %w", err)
	}
	log.Info().Str("sessionID", session.ID).Uint("quizID", q.ID).Str("studentID", who.UserID).Msg("Attempt session started")
	return s.sessionView(q, session)
}

func (s *attemptService) SaveAnswer(ctx context.Context, who identity.Identity, req dto.SaveAnswerRequest) (*dto.SessionResponse, error) {
	session, err := s.ownedSession(ctx, who, req.SessionID)
	if err != nil {
		return nil, err
	}
	q, err := s.quizRepo.FindByID(ctx, session.QuizID)
	if err != nil {
		return nil, notFound(err, quiz.ErrQuizNotFound)
	}
	def := toDefinition(q)

	state := restoreSession(session)
	if err := stateError(state.State); err != nil {
		return nil, err
	}
	if state.Expired(s.clock.Now()) {
		return nil, quiz.ErrTimeLimitExceeded
	}

	switch def.Type {
	case quiz.TypeMCQ:
		if req.QuestionIndex == nil || req.OptionIndex == nil {
			return nil, quiz.ErrInvalidAnswer
		}
		if err := quiz.CheckChoices(def, map[int]int{*req.QuestionIndex: *req.OptionIndex}); err != nil {
			return nil, err
		}
		if err := state.Choose(*req.QuestionIndex, *req.OptionIndex); err != nil {
			return nil, err
		}
	case quiz.TypeOpenEnded:
		if req.TextAnswer == nil && req.FileURL == nil {
			return nil, quiz.ErrInvalidAnswer
		}
		if req.TextAnswer != nil {
			if !def.AcceptTextAnswer {
				return nil, quiz.ErrInvalidAnswer
			}
			if err := state.WriteText(*req.TextAnswer); err != nil {
				return nil, err
			}
		}
		if req.FileURL != nil {
			if !def.AcceptFileUpload {
				return nil, quiz.ErrInvalidAnswer
			}
			if err := state.AttachFile(*req.FileURL); err != nil {
				return nil, err
			}
		}
	}

	storeDraft(session, state.Draft)
	ok, err := s.sessionRepo.SaveDraft(ctx, session)
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to save draft answer")
		return nil, fmt.Errorf("database error saving answer: %w", err)
	}
	if !ok {
		return nil, quiz.ErrSubmissionPending
	}
	return s.sessionView(q, session)
}

var integrityCounters = map[string]repository.IntegrityCounter{
	"copy":         repository.CounterClipboardEvents,
	"paste":        repository.CounterClipboardEvents,
	"context_menu": repository.CounterContextMenuEvents,
	"tab_hidden":   repository.CounterTabSwitches,
}

var integrityWarnings = map[string]string{
	"copy":         "Copying quiz content is not allowed. This event has been recorded.",
	"paste":        "Pasting into answers is not allowed. This event has been recorded.",
	"context_menu": "The context menu is disabled during the quiz.",
	"tab_hidden":   "You left the quiz tab. Switching tabs is recorded and visible to your teacher.",
}

func (s *attemptService) RecordIntegrityEvent(ctx context.Context, who identity.Identity, req dto.IntegrityEventRequest) (*dto.IntegrityResponse, error) {
	counter, ok := integrityCounters[req.Event]
	if !ok {
		return nil, fmt.Errorf("unknown integrity event %q", req.Event)
	}
	session, err := s.ownedSession(ctx, who, req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := stateError(quiz.State(session.State)); err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.Increment(ctx, session.ID, counter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quiz.ErrSubmissionPending
		}
		return nil, fmt.Errorf("database error recording integrity event: %w", err)
	}
	log.Warn().Str("sessionID", session.ID).Str("studentID", who.UserID).Str("event", req.Event).Msg("Integrity event")

	return &dto.IntegrityResponse{
		Warning:           integrityWarnings[req.Event],
		TabSwitches:       updated.TabSwitches,
		ClipboardEvents:   updated.ClipboardEvents,
		ContextMenuEvents: updated.ContextMenuEvents,
	}, nil
}

func (s *attemptService) ownedSession(ctx context.Context, who identity.Identity, id string) (*model.AttemptSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, quiz.ErrSessionNotFound)
	}
	if session.StudentID != who.UserID {
		return nil, quiz.ErrSessionNotFound
	}
	return session, nil
}

// stateError explains why a session no longer takes answers.
func stateError(state quiz.State) error {
	switch {
	case state == quiz.StateInProgress:
		return nil
	case state.Terminal():
		return quiz.ErrAlreadySubmitted
	case state == quiz.StateSubmitting:
		return quiz.ErrSubmissionPending
	default:
		return fmt.Errorf("%w: session is %s", quiz.ErrInvalidTransition, state)
	}
}

func (s *attemptService) sessionView(q *model.Quiz, session *model.AttemptSession) (*dto.SessionResponse, error) {
	view, err := toQuizView(q)
	if err != nil {
		return nil, err
	}
	started := session.StartedAt
	resp := &dto.SessionResponse{
		SessionID:     session.ID,
		State:         session.State,
		AttemptNumber: session.AttemptNumber,
		StartedAt:     &started,
		Deadline:      session.Deadline,
		Answers:       session.DraftChoices.Data(),
		TextAnswer:    session.DraftText,
		FileURL:       session.DraftFileURL,
		Quiz:          &view,
	}
	if left, timed := restoreSession(session).Remaining(s.clock.Now()); timed {
		secs := int(left.Seconds())
		resp.RemainingSeconds = &secs
	}
	return resp, nil
}
