package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Nihongo/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	// FindByPosition loads the quiz at a curriculum position with its course and ordered questions.
	FindByPosition(ctx context.Context, courseID uint, moduleIndex, itemIndex int) (*model.Quiz, error)
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	// Upsert creates the quiz or replaces the one at the same position, questions included.
	Upsert(ctx context.Context, quiz *model.Quiz) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.question_index ASC")
}

func (r *quizRepository) FindByPosition(ctx context.Context, courseID uint, moduleIndex, itemIndex int) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Questions", orderedQuestions).
		Where("course_id = ? AND module_index = ? AND item_index = ?", courseID, moduleIndex, itemIndex).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Questions", orderedQuestions).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Upsert(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Quiz
		err := tx.Where("course_id = ? AND module_index = ? AND item_index = ?", quiz.CourseID, quiz.ModuleIndex, quiz.ItemIndex).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Omit("Course").Create(quiz).Error
		case err != nil:
			return err
		}

		quiz.ID = existing.ID
		quiz.CreatedAt = existing.CreatedAt
		if err := tx.Where("quiz_id = ?", existing.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		questions := quiz.Questions
		if err := tx.Omit("Course", "Questions").Save(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quiz.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		quiz.Questions = questions
		return nil
	})
}
