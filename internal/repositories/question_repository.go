package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"intervue/internal/models"
)

var (
	ErrTopicNotFound    = errors.New("topic not found")
	ErrQuestionNotFound = errors.New("question not found")
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return r.DB.WithContext(ctx).Create(topic).Error
}

func (r *TopicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	err := r.DB.WithContext(ctx).First(&topic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) GetAll(ctx context.Context) ([]models.Topic, error) {
	topics := []models.Topic{}
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) Update(ctx context.Context, id string, updates *models.Topic) (*models.Topic, error) {
	var topic models.Topic
	if err := r.DB.WithContext(ctx).First(&topic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&topic).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.Topic{}, "id = ?", id)
	if result.Error == nil && result.RowsAffected == 0 {
		return ErrTopicNotFound
	}
	return result.Error
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.DB.WithContext(ctx).First(&question, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) GetAll(ctx context.Context) ([]models.Question, error) {
	questions := []models.Question{}
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// GetByTopic returns the full question pool for a topic. Topic-derived
// sessions draw their random subset from this pool.
func (r *QuestionRepository) GetByTopic(ctx context.Context, topicID string) ([]models.Question, error) {
	questions := []models.Question{}
	err := r.DB.WithContext(ctx).Where("topic_id = ?", topicID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(ctx context.Context, id string, updates *models.Question) (*models.Question, error) {
	var question models.Question
	if err := r.DB.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&question).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if result.Error == nil && result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return result.Error
}
