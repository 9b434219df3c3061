package models

// ErrorResponse is the machine-readable error body returned by every
// endpoint. It doubles as an error so validators can return it directly.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// StartSessionResponse is returned by POST /api/sessions/start.
type StartSessionResponse struct {
	Session         *InterviewSession `json:"session"`
	CurrentQuestion *Question         `json:"currentQuestion"`
}

// SubmitAnswerResponse is returned by POST /api/sessions/answer. Score is set
// only when the submission completed the session; NextQuestion only when it
// did not.
type SubmitAnswerResponse struct {
	Turn         *InterviewTurn `json:"turn"`
	Completed    bool           `json:"completed"`
	Score        *Score         `json:"score,omitempty"`
	NextQuestion *Question      `json:"nextQuestion,omitempty"`
}

// SessionDetailResponse is returned by GET /api/sessions/{id}.
type SessionDetailResponse struct {
	*InterviewSession
	Turns           []InterviewTurn `json:"turns"`
	CurrentQuestion *Question       `json:"currentQuestion,omitempty"`
	TotalQuestions  int             `json:"totalQuestions"`
}

// SessionSummary is one row of the recent/history listings.
type SessionSummary struct {
	*InterviewSession
	TestName       string `json:"testName,omitempty"`
	Score          *Score `json:"score,omitempty"`
	QuestionCount  int    `json:"questionCount"`
	TotalQuestions int    `json:"totalQuestions"`
}

// TurnWithQuestion pairs a turn with the question it answered, for the
// per-session turn listing.
type TurnWithQuestion struct {
	InterviewTurn
	Question *Question `json:"question,omitempty"`
}

// UserStats is the dashboard stats payload.
type UserStats struct {
	TotalTests   int `json:"totalTests"`
	AverageScore int `json:"averageScore"`
	Improvement  int `json:"improvement"`
}
