package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervue/internal/models"
)

var ErrScoreNotFound = errors.New("score not found")

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) WithTx(tx *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: tx}
}

func (r *ScoreRepository) Create(ctx context.Context, score *models.Score) error {
	return r.DB.WithContext(ctx).Create(score).Error
}

func (r *ScoreRepository) GetBySession(ctx context.Context, sessionID string) (*models.Score, error) {
	var score models.Score
	err := r.DB.WithContext(ctx).First(&score, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// GetByUser returns the user's scores, most recent first. The totals feed
// the evaluation prompt's candidate context and the dashboard stats.
func (r *ScoreRepository) GetByUser(ctx context.Context, userID string) ([]models.Score, error) {
	scores := []models.Score{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scores).Error
	return scores, err
}
