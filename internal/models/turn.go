package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Evaluation is the four-category scored judgment of one answer, produced by
// the evaluation client. Scores are clamped to [0,100] before a turn is
// persisted; list fields are never nil.
type Evaluation struct {
	Grammar         int      `json:"grammar"`
	Technical       int      `json:"technical"`
	Depth           int      `json:"depth"`
	Communication   int      `json:"communication"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	AreasToImprove  []string `json:"areasToImprove"`
	Recommendations []string `json:"recommendations"`
}

// InterviewTurn is one question-answer-evaluation triple within a session.
// Created exactly once per question, never mutated afterwards.
type InterviewTurn struct {
	ID         string                           `gorm:"primaryKey" json:"id"`
	SessionID  string                           `gorm:"not null;index;uniqueIndex:idx_session_turn" json:"sessionId"`
	QuestionID string                           `gorm:"not null" json:"questionId"`
	TurnNumber int                              `gorm:"not null;uniqueIndex:idx_session_turn" json:"turnNumber"`
	UserAnswer string                           `gorm:"type:text;not null" json:"userAnswer"`
	AIResponse string                           `gorm:"type:text;not null" json:"aiResponse"`
	Evaluation datatypes.JSONType[Evaluation]   `json:"evaluation"`
	CreatedAt  time.Time                        `json:"createdAt"`
}

func (t *InterviewTurn) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
