package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervue/internal/models"
)

var ErrTestNotFound = errors.New("test not found")

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	return r.DB.WithContext(ctx).Create(test).Error
}

func (r *TestRepository) GetByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	err := r.DB.WithContext(ctx).First(&test, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) GetAll(ctx context.Context) ([]models.Test, error) {
	tests := []models.Test{}
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) Update(ctx context.Context, id string, updates *models.Test) (*models.Test, error) {
	var test models.Test
	if err := r.DB.WithContext(ctx).First(&test, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&test).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.Test{}, "id = ?", id)
	if result.Error == nil && result.RowsAffected == 0 {
		return ErrTestNotFound
	}
	return result.Error
}
