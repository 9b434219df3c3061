package gemini

import (
	"encoding/json"
	"math"

	"intervue/internal/llm"
	"intervue/internal/utils"
)

// fallback used when the model answers without any conversational text
const defaultFeedback = "Thank you for your answer."

// parseEvaluation turns raw model output into an evaluation. The output may
// be wrapped in a markdown code fence; individual fields may be missing,
// out of range, or of the wrong type without failing the whole evaluation.
// Only content that is not a JSON object at all is a parse error.
func parseEvaluation(raw string) (*llm.EvalResult, error) {
	cleaned := utils.StripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeParse,
			Message:  "Response is not a JSON object",
			Err:      err,
		}
	}

	result := &llm.EvalResult{}
	result.Grammar = decodeScore(fields["grammar"])
	result.Technical = decodeScore(fields["technical"])
	result.Depth = decodeScore(fields["depth"])
	result.Communication = decodeScore(fields["communication"])
	result.Strengths = decodeList(fields["strengths"])
	result.AreasToImprove = decodeList(fields["areasToImprove"])
	result.Recommendations = decodeList(fields["recommendations"])

	result.Feedback = decodeString(fields["feedback"])
	if result.Feedback == "" {
		result.Feedback = defaultFeedback
	}
	result.InterviewerText = decodeString(fields["interviewer_text"])
	if result.InterviewerText == "" {
		result.InterviewerText = result.Feedback
	}

	return result, nil
}

// decodeScore reads a numeric score, clamped to [0,100]. Missing or
// malformed values decode as 0.
func decodeScore(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return clamp(int(math.Round(f)), 0, 100)
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// decodeList reads a string list; anything malformed becomes an empty list.
func decodeList(raw json.RawMessage) []string {
	if raw == nil {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
