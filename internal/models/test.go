package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TestTypeTest     = "test"
	TestTypePractice = "practice"
)

// Test is a named, reusable bundle of question IDs. Editing a test never
// affects sessions already created from it: sessions copy QuestionIDs when
// they start.
type Test struct {
	ID              string                      `gorm:"primaryKey" json:"id"`
	Name            string                      `gorm:"not null" json:"name"`
	Description     string                      `json:"description,omitempty"`
	QuestionIDs     datatypes.JSONSlice[string] `json:"questionIds"`
	DurationMinutes int                         `json:"durationMinutes,omitempty"`
	Type            string                      `gorm:"not null;default:test" json:"type"`
	CreatedBy       string                      `json:"createdBy,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
