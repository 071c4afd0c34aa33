package service

import (
	"context"
	"fmt"

	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService serves quiz definitions to students.
type QuizService interface {
	// GetQuiz returns the quiz with every correct flag and explanation removed.
	GetQuiz(ctx context.Context, ref dto.QuizRef) (*dto.QuizView, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) GetQuiz(ctx context.Context, ref dto.QuizRef) (*dto.QuizView, error) {
	q, err := loadQuiz(ctx, s.quizRepo, ref)
	if err != nil {
		return nil, err
	}
	view, err := toQuizView(q)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func loadQuiz(ctx context.Context, repo repository.QuizRepository, ref dto.QuizRef) (*model.Quiz, error) {
	q, err := repo.FindByPosition(ctx, ref.CourseID, ref.Module(), ref.Item())
	if err != nil {
		err = notFound(err, quiz.ErrQuizNotFound)
		if err != quiz.ErrQuizNotFound {
			log.Error().Err(err).Uint("courseID", ref.CourseID).Int("moduleIndex", ref.Module()).Int("itemIndex", ref.Item()).Msg("Failed to load quiz")
			return nil, fmt.Errorf("error fetching quiz: %w", err)
		}
		return nil, err
	}
	return q, nil
}
