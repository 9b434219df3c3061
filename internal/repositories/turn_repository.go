package repositories

import (
	"context"

	"gorm.io/gorm"

	"intervue/internal/models"
)

type TurnRepository struct {
	DB *gorm.DB
}

func NewTurnRepository(db *gorm.DB) *TurnRepository {
	return &TurnRepository{DB: db}
}

func (r *TurnRepository) WithTx(tx *gorm.DB) *TurnRepository {
	return &TurnRepository{DB: tx}
}

func (r *TurnRepository) Create(ctx context.Context, turn *models.InterviewTurn) error {
	return r.DB.WithContext(ctx).Create(turn).Error
}

// GetBySession returns all turns of a session in turn order.
func (r *TurnRepository) GetBySession(ctx context.Context, sessionID string) ([]models.InterviewTurn, error) {
	turns := []models.InterviewTurn{}
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("turn_number ASC").
		Find(&turns).Error
	return turns, err
}

func (r *TurnRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.InterviewTurn{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
