package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

// InterviewSession tracks one user's walk through a fixed question sequence.
//
// Invariants maintained by the session manager:
//   - 0 <= CurrentQuestionIndex <= len(QuestionIDs)
//   - Status is completed iff CompletedAt is set iff
//     CurrentQuestionIndex == len(QuestionIDs)
//   - once Status leaves in_progress it never goes back
type InterviewSession struct {
	ID                   string                      `gorm:"primaryKey" json:"id"`
	UserID               string                      `gorm:"not null;index" json:"userId"`
	TestID               string                      `gorm:"index" json:"testId,omitempty"`
	TopicID              string                      `json:"topicId,omitempty"`
	Status               string                      `gorm:"not null;default:in_progress" json:"status"`
	CurrentQuestionIndex int                         `gorm:"not null;default:0" json:"currentQuestionIndex"`
	QuestionIDs          datatypes.JSONSlice[string] `gorm:"not null" json:"questionIds"`
	StartedAt            time.Time                   `json:"startedAt"`
	CompletedAt          *time.Time                  `json:"completedAt,omitempty"`
}

func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	return nil
}

// Active reports whether the session still accepts answers.
func (s *InterviewSession) Active() bool {
	return s.Status == SessionInProgress
}
