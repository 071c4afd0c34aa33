package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminQuizService interface {
	CreateCourse(ctx context.Context, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error)
	// UpsertQuiz validates the answer key before anything is written.
	UpsertQuiz(ctx context.Context, req dto.QuizUpsertDTO) (*dto.QuizKeyDTO, error)
	GetQuizWithAnswers(ctx context.Context, ref dto.QuizRef) (*dto.QuizKeyDTO, error)
}

type adminQuizService struct {
	courseRepo repository.CourseRepository
	quizRepo   repository.QuizRepository
}

func NewAdminQuizService(courseRepo repository.CourseRepository, quizRepo repository.QuizRepository) AdminQuizService {
	return &adminQuizService{courseRepo: courseRepo, quizRepo: quizRepo}
}

func (s *adminQuizService) CreateCourse(ctx context.Context, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error) {
	course := model.Course{Title: req.Title, Description: req.Description, ShowAnswers: req.ShowAnswers}
	if err := s.courseRepo.Create(ctx, &course); err != nil {
		log.Error().Err(err).Msg("Failed to create course in database")
		return nil, fmt.Errorf("database error creating course: %w", err)
	}

	var resp dto.CourseResponseDTO
	if err := copier.Copy(&resp, &course); err != nil {
		log.Error().Err(err).Msg("Failed to copy Course model to CourseResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminQuizService) UpsertQuiz(ctx context.Context, req dto.QuizUpsertDTO) (*dto.QuizKeyDTO, error) {
	if _, err := s.courseRepo.FindByID(ctx, req.CourseID); err != nil {
		return nil, notFound(err, quiz.ErrCourseNotFound)
	}

	q := fromUpsertDTO(req)
	if q.QuizType == model.QuizTypeMCQ && q.TotalPoints == 0 {
		q.TotalPoints = toDefinition(&q).MCQTotalPoints()
	}
	if err := toDefinition(&q).Validate(); err != nil {
		log.Warn().Err(err).Uint("courseID", req.CourseID).Int("moduleIndex", q.ModuleIndex).Int("itemIndex", q.ItemIndex).Msg("Rejected quiz definition")
		return nil, err
	}

	if err := s.quizRepo.Upsert(ctx, &q); err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("Failed to upsert quiz")
		return nil, fmt.Errorf("database error saving quiz: %w", err)
	}
	log.Info().Uint("quizID", q.ID).Str("quizType", q.QuizType).Int("questions", len(q.Questions)).Msg("Quiz saved")

	return s.GetQuizWithAnswers(ctx, req.QuizRef)
}

func (s *adminQuizService) GetQuizWithAnswers(ctx context.Context, ref dto.QuizRef) (*dto.QuizKeyDTO, error) {
	q, err := s.quizRepo.FindByPosition(ctx, ref.CourseID, ref.Module(), ref.Item())
	if err != nil {
		return nil, notFound(err, quiz.ErrQuizNotFound)
	}
	key, err := toQuizKey(q)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
