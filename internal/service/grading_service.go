package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
)

// GradingService is the teacher-facing side of open-ended quizzes.
type GradingService interface {
	ListSubmissions(ctx context.Context, ref dto.QuizRef) (*dto.GradingQueueResponse, error)
	// Grade appends a grade event and makes it the submission's current grade.
	// Invalid scores leave the submission untouched.
	Grade(ctx context.Context, grader identity.Identity, req dto.GradeSubmissionRequest) (*dto.GradingEntry, error)
	History(ctx context.Context, submissionID uint) ([]dto.GradeEventDTO, error)
	Suggest(ctx context.Context, req dto.SuggestGradeRequest) (*dto.GradeSuggestionResponse, error)
}

type gradingService struct {
	quizRepo       repository.QuizRepository
	submissionRepo repository.SubmissionRepository
	notifier       NotificationService
	llm            GeminiLLMService
	clock          quiz.Clock
}

func NewGradingService(
	quizRepo repository.QuizRepository,
	submissionRepo repository.SubmissionRepository,
	notifier NotificationService,
	llm GeminiLLMService,
	clock quiz.Clock,
) GradingService {
	return &gradingService{
		quizRepo:       quizRepo,
		submissionRepo: submissionRepo,
		notifier:       notifier,
		llm:            llm,
		clock:          clock,
	}
}

func (s *gradingService) ListSubmissions(ctx context.Context, ref dto.QuizRef) (*dto.GradingQueueResponse, error) {
	q, err := loadQuiz(ctx, s.quizRepo, ref)
	if err != nil {
		return nil, err
	}
	if q.QuizType != model.QuizTypeOpenEnded {
		return nil, quiz.ErrNotGradable
	}
	subs, err := s.submissionRepo.ListByQuiz(ctx, q.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", q.ID).Msg("Failed to list submissions for grading")
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}

	view, err := toQuizView(q)
	if err != nil {
		return nil, err
	}
	resp := &dto.GradingQueueResponse{Quiz: view, Ungraded: []dto.GradingEntry{}, Graded: []dto.GradingEntry{}}
	for i := range subs {
		entry, err := toGradingEntry(&subs[i])
		if err != nil {
			return nil, err
		}
		if subs[i].IsGraded() {
			resp.Graded = append(resp.Graded, entry)
		} else {
			resp.Ungraded = append(resp.Ungraded, entry)
		}
	}
	return resp, nil
}

func (s *gradingService) Grade(ctx context.Context, grader identity.Identity, req dto.GradeSubmissionRequest) (*dto.GradingEntry, error) {
	q, err := loadQuiz(ctx, s.quizRepo, req.QuizRef)
	if err != nil {
		return nil, err
	}
	sub, err := s.submissionRepo.FindByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, notFound(err, quiz.ErrSubmissionNotFound)
	}
	if sub.QuizID != q.ID {
		return nil, quiz.ErrSubmissionNotFound
	}

	result, err := quiz.Grade(toDefinition(q), *req.Score)
	if err != nil {
		log.Warn().Err(err).Uint("submissionID", sub.ID).Float64("score", *req.Score).Msg("Rejected grade")
		return nil, err
	}

	regrade := sub.GradedScore != nil
	event := &model.GradeEvent{
		Score:      result.Score,
		Percentage: result.Percentage,
		Passed:     result.Passed,
		Feedback:   req.Feedback,
		GradedBy:   grader.UserID,
		GradedAt:   s.clock.Now(),
	}
	if err := s.submissionRepo.ApplyGrade(ctx, sub, event); err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("Failed to store grade")
		return nil, fmt.Errorf("database error saving grade: %w", err)
	}
	log.Info().Uint("submissionID", sub.ID).Str("gradedBy", grader.UserID).Float64("score", result.Score).Bool("regrade", regrade).Msg("Submission graded")

	s.notifier.NotifyGraded(GradeNotification{
		StudentEmail: sub.StudentEmail,
		QuizTitle:    q.Title,
		Score:        result.Score,
		TotalPoints:  result.TotalPoints,
		Percentage:   result.Percentage,
		Passed:       result.Passed,
		Feedback:     req.Feedback,
		Regrade:      regrade,
	})

	entry, err := toGradingEntry(sub)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *gradingService) History(ctx context.Context, submissionID uint) ([]dto.GradeEventDTO, error) {
	if _, err := s.submissionRepo.FindByID(ctx, submissionID); err != nil {
		return nil, notFound(err, quiz.ErrSubmissionNotFound)
	}
	events, err := s.submissionRepo.ListGradeEvents(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching grade history: %w", err)
	}
	resp := []dto.GradeEventDTO{}
	if err := copier.Copy(&resp, &events); err != nil {
		return nil, fmt.Errorf("error preparing grade history: %w", err)
	}
	return resp, nil
}

func (s *gradingService) Suggest(ctx context.Context, req dto.SuggestGradeRequest) (*dto.GradeSuggestionResponse, error) {
	sub, err := s.submissionRepo.FindByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, notFound(err, quiz.ErrSubmissionNotFound)
	}
	q, err := s.quizRepo.FindByID(ctx, sub.QuizID)
	if err != nil {
		return nil, notFound(err, quiz.ErrQuizNotFound)
	}
	if q.QuizType != model.QuizTypeOpenEnded {
		return nil, quiz.ErrNotGradable
	}

	feedback, score, err := s.llm.SuggestGrade(ctx, q, sub)
	if err != nil {
		log.Warn().Err(err).Uint("submissionID", sub.ID).Msg("Grading suggestion unavailable")
		return nil, fmt.Errorf("grading suggestion unavailable: %w", err)
	}
	return &dto.GradeSuggestionResponse{SubmissionID: sub.ID, Score: score, TotalPoints: q.TotalPoints, Feedback: feedback}, nil
}

func toGradingEntry(sub *model.Submission) (dto.GradingEntry, error) {
	var entry dto.GradingEntry
	if err := copier.Copy(&entry, sub); err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("Failed to copy Submission model to GradingEntry")
		return entry, fmt.Errorf("error preparing grading response: %w", err)
	}
	return entry, nil
}
