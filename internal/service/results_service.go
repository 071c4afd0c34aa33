package service

import (
	"context"
	"fmt"

	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
)

type ResultsService interface {
	// GetResults lists the caller's attempts, most recent first.
	GetResults(ctx context.Context, who identity.Identity, ref dto.QuizRef) (*dto.ResultsResponse, error)
}

type resultsService struct {
	quizRepo       repository.QuizRepository
	submissionRepo repository.SubmissionRepository
	scoreConverter ScoreConverterService
}

func NewResultsService(quizRepo repository.QuizRepository, submissionRepo repository.SubmissionRepository, scoreConverter ScoreConverterService) ResultsService {
	return &resultsService{quizRepo: quizRepo, submissionRepo: submissionRepo, scoreConverter: scoreConverter}
}

func (s *resultsService) GetResults(ctx context.Context, who identity.Identity, ref dto.QuizRef) (*dto.ResultsResponse, error) {
	q, err := loadQuiz(ctx, s.quizRepo, ref)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissionRepo.ListByQuizAndStudent(ctx, q.ID, who.UserID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", q.ID).Str("studentID", who.UserID).Msg("Failed to list submissions")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	view, err := toQuizView(q)
	if err != nil {
		return nil, err
	}
	// the key is never shown before the student has handed something in
	showAnswers := q.AnswersVisible() && len(subs) > 0
	def := toDefinition(q)

	resp := &dto.ResultsResponse{Quiz: view, ShowAnswers: showAnswers, Submissions: make([]dto.SubmissionResult, 0, len(subs))}
	for i := range subs {
		r := s.toResult(&subs[i], q, def, showAnswers)
		r.Expanded = i == 0
		resp.Submissions = append(resp.Submissions, r)
	}
	return resp, nil
}

func (s *resultsService) toResult(sub *model.Submission, q *model.Quiz, def quiz.Definition, showAnswers bool) dto.SubmissionResult {
	r := dto.SubmissionResult{
		ID:            sub.ID,
		AttemptNumber: sub.AttemptNumber,
		Status:        sub.Status,
		StartedAt:     sub.StartedAt,
		SubmittedAt:   sub.SubmittedAt,
		TimeSpent:     sub.TimeSpent,
		AutoSubmitted: sub.AutoSubmitted,
		TotalPoints:   sub.TotalPoints,
	}
	if sub.IsGraded() {
		score, pct, passed := sub.Score, sub.Percentage, sub.Passed
		r.Score = &score
		r.Percentage = &pct
		r.Passed = &passed
		if letter, err := s.scoreConverter.ToLetterGrade(pct); err == nil {
			r.Grade = letter
		}
	}

	if def.Type == quiz.TypeOpenEnded {
		r.TextAnswer = sub.TextAnswer
		r.FileURL = sub.FileURL
		r.Feedback = sub.Feedback
		r.GradedAt = sub.GradedAt
		return r
	}

	choices := sub.Choices.Data()
	r.Answers = choices
	evaluated, err := quiz.Evaluate(def, quiz.Answers{Choices: choices}, true)
	if err != nil {
		log.Warn().Err(err).Uint("submissionID", sub.ID).Msg("Could not build answer review")
		return r
	}
	byIndex := make(map[int]model.Question, len(q.Questions))
	for _, mq := range q.Questions {
		byIndex[mq.QuestionIndex] = mq
	}
	for _, qr := range evaluated.Questions {
		mq := byIndex[qr.Index]
		review := dto.QuestionReview{
			QuestionIndex:  qr.Index,
			Question:       mq.Question,
			SelectedOption: qr.Selected,
			Points:         qr.Points,
		}
		for _, o := range mq.Options {
			review.Options = append(review.Options, dto.OptionView{Text: o.Text})
		}
		if showAnswers {
			correct, isCorrect, earned := qr.Correct, qr.IsCorrect, qr.Earned
			review.CorrectOption = &correct
			review.IsCorrect = &isCorrect
			review.Earned = &earned
			if !isCorrect {
				review.Explanation = mq.Explanation
			}
		}
		r.Review = append(r.Review, review)
	}
	return r
}
