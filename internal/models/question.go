package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Topic groups questions into an interview category.
type Topic struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// Question is one entry in the question bank. Sessions snapshot question IDs
// at creation time, so a question referenced by a session is never edited in
// place from the session's point of view.
type Question struct {
	ID                string                       `gorm:"primaryKey" json:"id"`
	TopicID           string                       `gorm:"not null;index" json:"topicId"`
	QuestionText      string                       `gorm:"type:text;not null" json:"questionText"`
	Difficulty        string                       `gorm:"not null" json:"difficulty"`
	ExpectedKeyPoints datatypes.JSONSlice[string]  `json:"expectedKeyPoints,omitempty"`
	CreatedBy         string                       `json:"createdBy,omitempty"`
	CreatedAt         time.Time                    `json:"createdAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}
