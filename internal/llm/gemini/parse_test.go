package gemini

import (
	"reflect"
	"testing"

	"intervue/internal/llm"
)

func TestParseEvaluation_FullResponse(t *testing.T) {
	raw := `{
		"grammar": 85,
		"technical": 90,
		"depth": 75,
		"communication": 80,
		"feedback": "Solid explanation of the core concept.",
		"interviewer_text": "Good, let's move on.",
		"strengths": ["accurate terminology"],
		"areasToImprove": ["cover edge cases"],
		"recommendations": ["practice whiteboard walkthroughs"]
	}`

	result, err := parseEvaluation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Technical != 90 || result.Grammar != 85 || result.Depth != 75 || result.Communication != 80 {
		t.Fatalf("unexpected scores: %+v", result.Evaluation)
	}
	if result.InterviewerText != "Good, let's move on." {
		t.Fatalf("unexpected interviewer text: %q", result.InterviewerText)
	}
	if !reflect.DeepEqual(result.Strengths, []string{"accurate terminology"}) {
		t.Fatalf("unexpected strengths: %v", result.Strengths)
	}
}

func TestParseEvaluation_CodeFenced(t *testing.T) {
	raw := "```json\n{\"technical\": 70, \"feedback\": \"ok\"}\n```"

	result, err := parseEvaluation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Technical != 70 {
		t.Fatalf("expected technical 70, got %d", result.Technical)
	}
}

func TestParseEvaluation_ClampsScores(t *testing.T) {
	result, err := parseEvaluation(`{"technical": 150, "grammar": -20, "depth": 99.6}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Technical != 100 {
		t.Fatalf("expected technical clamped to 100, got %d", result.Technical)
	}
	if result.Grammar != 0 {
		t.Fatalf("expected grammar clamped to 0, got %d", result.Grammar)
	}
	if result.Depth != 100 {
		t.Fatalf("expected depth rounded to 100, got %d", result.Depth)
	}
}

func TestParseEvaluation_MissingFields(t *testing.T) {
	result, err := parseEvaluation(`{"technical": 60}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Grammar != 0 || result.Depth != 0 || result.Communication != 0 {
		t.Fatalf("expected missing scores to default to 0: %+v", result.Evaluation)
	}
	if result.Strengths == nil || len(result.Strengths) != 0 {
		t.Fatalf("expected empty strengths, got %v", result.Strengths)
	}
	if result.Feedback != defaultFeedback {
		t.Fatalf("expected fallback feedback, got %q", result.Feedback)
	}
	if result.InterviewerText != defaultFeedback {
		t.Fatalf("expected interviewer text to fall back to feedback, got %q", result.InterviewerText)
	}
}

func TestParseEvaluation_MalformedFieldTypes(t *testing.T) {
	result, err := parseEvaluation(`{"technical": "high", "strengths": "not a list", "feedback": 42}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Technical != 0 {
		t.Fatalf("expected non-numeric score to decode as 0, got %d", result.Technical)
	}
	if len(result.Strengths) != 0 {
		t.Fatalf("expected malformed list to decode as empty, got %v", result.Strengths)
	}
	if result.Feedback != defaultFeedback {
		t.Fatalf("expected fallback feedback, got %q", result.Feedback)
	}
}

func TestParseEvaluation_NotAnObject(t *testing.T) {
	for _, raw := range []string{"I cannot evaluate this answer.", `["a", "b"]`, ""} {
		_, err := parseEvaluation(raw)
		if !llm.IsParseError(err) {
			t.Fatalf("input %q: expected parse error, got %v", raw, err)
		}
	}
}

func TestParseEvaluation_InterviewerTextFallsBackToFeedback(t *testing.T) {
	result, err := parseEvaluation(`{"feedback": "Nice depth on indexing."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InterviewerText != "Nice depth on indexing." {
		t.Fatalf("expected interviewer text from feedback, got %q", result.InterviewerText)
	}
}
