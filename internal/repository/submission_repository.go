package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// CreateAttempt numbers the submission as the student's next attempt and
	// inserts it. With singleAttempt set, any earlier submission makes it fail
	// with quiz.ErrAlreadySubmitted.
	CreateAttempt(ctx context.Context, sub *model.Submission, singleAttempt bool) error
	FindByID(ctx context.Context, id uint) (*model.Submission, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.Submission, error)
	CountByQuizAndStudent(ctx context.Context, quizID uint, studentID string) (int64, error)
	ListByQuizAndStudent(ctx context.Context, quizID uint, studentID string) ([]model.Submission, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]model.Submission, error)
	// ApplyGrade appends the grade event and copies it onto the submission's current grade.
	ApplyGrade(ctx context.Context, sub *model.Submission, event *model.GradeEvent) error
	ListGradeEvents(ctx context.Context, submissionID uint) ([]model.GradeEvent, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateAttempt(ctx context.Context, sub *model.Submission, singleAttempt bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Submission{}).
			Where("quiz_id = ? AND student_id = ?", sub.QuizID, sub.StudentID).
			Count(&count).Error; err != nil {
			return err
		}
		if singleAttempt && count > 0 {
			return quiz.ErrAlreadySubmitted
		}
		sub.AttemptNumber = int(count) + 1
		return tx.Omit("Quiz", "GradeEvents").Create(sub).Error
	})
	// a concurrent insert of the same attempt number or session loses here
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return quiz.ErrAlreadySubmitted
	}
	return err
}

func (r *submissionRepository) FindByID(ctx context.Context, id uint) (*model.Submission, error) {
	var sub model.Submission
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Submission, error) {
	var sub model.Submission
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) CountByQuizAndStudent(ctx context.Context, quizID uint, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) ListByQuizAndStudent(ctx context.Context, quizID uint, studentID string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("submitted_at DESC").Order("attempt_number DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) ListByQuiz(ctx context.Context, quizID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").Order("id ASC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) ApplyGrade(ctx context.Context, sub *model.Submission, event *model.GradeEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event.SubmissionID = sub.ID
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		score := event.Score
		gradedAt := event.GradedAt
		gradedBy := event.GradedBy
		updates := map[string]interface{}{
			"graded_score": score,
			"feedback":     event.Feedback,
			"graded_at":    gradedAt,
			"graded_by":    gradedBy,
			"score":        score,
			"percentage":   event.Percentage,
			"passed":       event.Passed,
			"status":       model.SubmissionStatusGraded,
		}
		res := tx.Model(&model.Submission{}).Where("id = ?", sub.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		sub.GradedScore = &score
		sub.Feedback = event.Feedback
		sub.GradedAt = &gradedAt
		sub.GradedBy = &gradedBy
		sub.Score = score
		sub.Percentage = event.Percentage
		sub.Passed = event.Passed
		sub.Status = model.SubmissionStatusGraded
		return nil
	})
}

func (r *submissionRepository) ListGradeEvents(ctx context.Context, submissionID uint) ([]model.GradeEvent, error) {
	var events []model.GradeEvent
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("graded_at DESC").Order("id DESC").
		Find(&events).Error
	return events, err
}
