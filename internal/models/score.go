package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DetailedFeedback aggregates free-text feedback across all turns of a
// session: deduplicated, first-seen order, capped lists.
type DetailedFeedback struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// Score is the session-level aggregate of all turn evaluations. It is a pure
// projection of the session's turns, created exactly once at completion and
// immutable afterwards.
type Score struct {
	ID                 string                               `gorm:"primaryKey" json:"id"`
	SessionID          string                               `gorm:"not null;uniqueIndex" json:"sessionId"`
	UserID             string                               `gorm:"not null;index" json:"userId"`
	GrammarScore       int                                  `gorm:"not null" json:"grammarScore"`
	TechnicalScore     int                                  `gorm:"not null" json:"technicalScore"`
	DepthScore         int                                  `gorm:"not null" json:"depthScore"`
	CommunicationScore int                                  `gorm:"not null" json:"communicationScore"`
	TotalScore         int                                  `gorm:"not null" json:"totalScore"`
	Grade              string                               `json:"grade"`
	DetailedFeedback   datatypes.JSONType[DetailedFeedback] `json:"detailedFeedback"`
	CreatedAt          time.Time                            `json:"createdAt"`
}

func (s *Score) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
