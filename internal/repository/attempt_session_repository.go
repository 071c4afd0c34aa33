package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntegrityCounter names the advisory counters kept on a session.
type IntegrityCounter string

const (
	CounterTabSwitches       IntegrityCounter = "tab_switches"
	CounterClipboardEvents   IntegrityCounter = "clipboard_events"
	CounterContextMenuEvents IntegrityCounter = "context_menu_events"
)

type AttemptSessionRepository interface {
	Create(ctx context.Context, session *model.AttemptSession) error
	FindByID(ctx context.Context, id string) (*model.AttemptSession, error)
	// FindOpen returns the student's in_progress or submitting session for the quiz.
	FindOpen(ctx context.Context, quizID uint, studentID string) (*model.AttemptSession, error)
	// SaveDraft stores draft answers; it only touches sessions still in progress.
	SaveDraft(ctx context.Context, session *model.AttemptSession) (bool, error)
	// Transition is a compare-and-swap on the session state.
	Transition(ctx context.Context, id string, from, to string, submittedAt *time.Time) (bool, error)
	// Claim moves an in_progress session to submitting and stamps the claim time.
	Claim(ctx context.Context, id string, at time.Time) (bool, error)
	// FindStaleClaims returns sessions left in submitting since before the cutoff.
	FindStaleClaims(ctx context.Context, claimedBefore time.Time, limit int) ([]model.AttemptSession, error)
	Increment(ctx context.Context, id string, counter IntegrityCounter) (*model.AttemptSession, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]model.AttemptSession, error)
}

type attemptSessionRepository struct {
	db *gorm.DB
}

func NewAttemptSessionRepository(db *gorm.DB) AttemptSessionRepository {
	return &attemptSessionRepository{db: db}
}

func (r *attemptSessionRepository) Create(ctx context.Context, session *model.AttemptSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *attemptSessionRepository) FindByID(ctx context.Context, id string) (*model.AttemptSession, error) {
	var session model.AttemptSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attemptSessionRepository) FindOpen(ctx context.Context, quizID uint, studentID string) (*model.AttemptSession, error) {
	var session model.AttemptSession
	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ? AND state IN ?", quizID, studentID, []string{string(quiz.StateInProgress), string(quiz.StateSubmitting)}).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attemptSessionRepository) SaveDraft(ctx context.Context, session *model.AttemptSession) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AttemptSession{}).
		Where("id = ? AND state = ?", session.ID, string(quiz.StateInProgress)).
		Updates(map[string]interface{}{
			"draft_choices":  datatypes.NewJSONType(session.DraftChoices.Data()),
			"draft_text":     session.DraftText,
			"draft_file_url": session.DraftFileURL,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptSessionRepository) Transition(ctx context.Context, id string, from, to string, submittedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"state": to}
	if submittedAt != nil {
		updates["submitted_at"] = *submittedAt
	}
	res := r.db.WithContext(ctx).Model(&model.AttemptSession{}).
		Where("id = ? AND state = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptSessionRepository) Claim(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AttemptSession{}).
		Where("id = ? AND state = ?", id, string(quiz.StateInProgress)).
		Updates(map[string]interface{}{"state": string(quiz.StateSubmitting), "claimed_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptSessionRepository) FindStaleClaims(ctx context.Context, claimedBefore time.Time, limit int) ([]model.AttemptSession, error) {
	var sessions []model.AttemptSession
	err := r.db.WithContext(ctx).
		Where("state = ? AND (claimed_at IS NULL OR claimed_at <= ?)", string(quiz.StateSubmitting), claimedBefore).
		Order("claimed_at ASC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *attemptSessionRepository) Increment(ctx context.Context, id string, counter IntegrityCounter) (*model.AttemptSession, error) {
	switch counter {
	case CounterTabSwitches, CounterClipboardEvents, CounterContextMenuEvents:
	default:
		return nil, fmt.Errorf("unknown integrity counter %q", counter)
	}
	col := string(counter)
	res := r.db.WithContext(ctx).Model(&model.AttemptSession{}).
		Where("id = ? AND state = ?", id, string(quiz.StateInProgress)).
		UpdateColumn(col, gorm.Expr(col+" + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *attemptSessionRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]model.AttemptSession, error) {
	var sessions []model.AttemptSession
	err := r.db.WithContext(ctx).
		Where("state = ? AND deadline IS NOT NULL AND deadline <= ?", string(quiz.StateInProgress), now).
		Order("deadline ASC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
