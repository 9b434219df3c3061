package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"intervue/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleIndex means a guarded index update matched no row: another
	// writer advanced the session first.
	ErrStaleIndex = errors.New("session index changed concurrently")
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: tx}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.DB.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	sessions := []models.InterviewSession{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// AdvanceIndex moves the session from fromIndex to fromIndex+1. The WHERE
// clause on the old index makes the update a compare-and-swap: if another
// writer advanced the session first, no row matches and ErrStaleIndex is
// returned.
func (r *SessionRepository) AdvanceIndex(ctx context.Context, sessionID string, fromIndex int) error {
	result := r.DB.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("id = ? AND current_question_index = ? AND status = ?",
			sessionID, fromIndex, models.SessionInProgress).
		Update("current_question_index", fromIndex+1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleIndex
	}
	return nil
}

// Complete marks the session completed, advancing the index past the last
// question in the same guarded update.
func (r *SessionRepository) Complete(ctx context.Context, sessionID string, fromIndex int, completedAt time.Time) error {
	result := r.DB.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("id = ? AND current_question_index = ? AND status = ?",
			sessionID, fromIndex, models.SessionInProgress).
		Updates(map[string]interface{}{
			"current_question_index": fromIndex + 1,
			"status":                 models.SessionCompleted,
			"completed_at":           completedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleIndex
	}
	return nil
}

// Abandon transitions an in_progress session to abandoned. Terminal statuses
// are left untouched.
func (r *SessionRepository) Abandon(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("id = ? AND status = ?", sessionID, models.SessionInProgress).
		Update("status", models.SessionAbandoned).Error
}

// AbandonStale marks in_progress sessions started before the cutoff as
// abandoned and returns how many rows changed. Used by the reaper job.
func (r *SessionRepository) AbandonStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("status = ? AND started_at < ?", models.SessionInProgress, cutoff).
		Update("status", models.SessionAbandoned)
	return result.RowsAffected, result.Error
}
