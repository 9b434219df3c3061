package llm

import (
	"context"

	"intervue/internal/models"
)

// Evaluation modes. Practice mode asks the model for a softer interviewer
// voice; scoring criteria are identical.
const (
	ModeTest     = "test"
	ModePractice = "practice"
)

// EvalContext gives the evaluator background on the candidate so feedback can
// reference progress over time.
type EvalContext struct {
	Username        string
	PastTotalScores []int
	Mode            string
}

// EvalResult is the full evaluation of one answer. InterviewerText is the
// short conversational reply shown (and read aloud) to the candidate,
// distinct from the evaluative feedback.
type EvalResult struct {
	models.Evaluation
	InterviewerText string
}

// Evaluator is the interface for LLM evaluation providers.
type Evaluator interface {
	EvaluateAnswer(ctx context.Context, questionText, answerText string, ec EvalContext) (*EvalResult, error)
	GetProviderName() string
}

// ProviderError represents an error from an evaluation provider.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes shared across providers.
const (
	ErrCodeAPIKey   = "invalid_api_key"
	ErrCodeUpstream = "upstream_error" // call failed, timed out, or returned empty content
	ErrCodeParse    = "parse_error"    // content could not be decoded after unwrapping
)

// IsUpstreamError reports whether err is a provider failure on the upstream
// call itself (timeout, non-success status, empty content).
func IsUpstreamError(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Code == ErrCodeUpstream
}

// IsParseError reports whether err means the upstream responded but the
// content did not match the expected evaluation structure.
func IsParseError(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Code == ErrCodeParse
}
