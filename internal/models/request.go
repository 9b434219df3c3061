package models

import "strings"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// implements the Validator interface
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return &ErrorResponse{Code: "missing_username", Message: "Username field is required"}
	}
	if len(r.Password) < 8 {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 8 characters"}
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_credentials", Message: "Username and password are required"}
	}
	return nil
}

// StartSessionRequest starts a session either from a fixed test or ad hoc
// from a topic. Exactly one of the two IDs must be set.
type StartSessionRequest struct {
	TestID  string `json:"testId"`
	TopicID string `json:"topicId"`
}

func (r *StartSessionRequest) Validate() error {
	if r.TestID == "" && r.TopicID == "" {
		return &ErrorResponse{Code: "missing_source", Message: "Either testId or topicId is required"}
	}
	if r.TestID != "" && r.TopicID != "" {
		return &ErrorResponse{Code: "ambiguous_source", Message: "Provide testId or topicId, not both"}
	}
	return nil
}

type SubmitAnswerRequest struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.SessionID == "" {
		return &ErrorResponse{Code: "missing_session_id", Message: "SessionId field is required"}
	}
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer field is required"}
	}
	return nil
}

type UpsertTopicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *UpsertTopicRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ErrorResponse{Code: "missing_name", Message: "Name field is required"}
	}
	return nil
}

type UpsertQuestionRequest struct {
	TopicID           string   `json:"topicId"`
	QuestionText      string   `json:"questionText"`
	Difficulty        string   `json:"difficulty"`
	ExpectedKeyPoints []string `json:"expectedKeyPoints"`
}

func (r *UpsertQuestionRequest) Validate() error {
	if r.TopicID == "" {
		return &ErrorResponse{Code: "missing_topic_id", Message: "TopicId field is required"}
	}
	if strings.TrimSpace(r.QuestionText) == "" {
		return &ErrorResponse{Code: "missing_question_text", Message: "QuestionText field is required"}
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return &ErrorResponse{Code: "invalid_difficulty", Message: "Difficulty must be one of: easy, medium, hard"}
	}
	return nil
}

type UpsertTestRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	QuestionIDs     []string `json:"questionIds"`
	DurationMinutes int      `json:"durationMinutes"`
	Type            string   `json:"type"`
}

func (r *UpsertTestRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ErrorResponse{Code: "missing_name", Message: "Name field is required"}
	}
	if len(r.QuestionIDs) == 0 {
		return &ErrorResponse{Code: "missing_questions", Message: "QuestionIds must not be empty"}
	}
	if r.Type == "" {
		r.Type = TestTypeTest
	}
	if r.Type != TestTypeTest && r.Type != TestTypePractice {
		return &ErrorResponse{Code: "invalid_type", Message: "Type must be test or practice"}
	}
	return nil
}
