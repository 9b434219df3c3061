package scoring

import (
	"errors"
	"math"

	"intervue/internal/models"
)

// ErrEmptySession is returned when aggregation is asked to score a session
// with no turns. The session manager never completes a zero-question session,
// so hitting this is an invariant violation upstream.
var ErrEmptySession = errors.New("cannot aggregate a session with no turns")

// Weighted total: technical dominates.
const (
	weightTechnical     = 0.50
	weightCommunication = 0.20
	weightDepth         = 0.15
	weightGrammar       = 0.15
)

// how many entries each detailed-feedback list keeps
const maxFeedbackItems = 5

// Result is the session-level aggregate of all turn evaluations.
type Result struct {
	Grammar          int
	Technical        int
	Depth            int
	Communication    int
	TotalScore       int
	Grade            string
	DetailedFeedback models.DetailedFeedback
}

// Aggregate computes the session score from an ordered, non-empty list of
// turns. It is deterministic and has no side effects; re-running over the
// same turns yields an identical result. Per-turn scores are already clamped
// to [0,100] by the evaluation client and are not re-clamped here.
func Aggregate(turns []models.InterviewTurn) (*Result, error) {
	if len(turns) == 0 {
		return nil, ErrEmptySession
	}

	var grammar, technical, depth, communication int
	var strengths, improvements, recommendations []string

	for _, turn := range turns {
		eval := turn.Evaluation.Data()
		grammar += eval.Grammar
		technical += eval.Technical
		depth += eval.Depth
		communication += eval.Communication
		strengths = append(strengths, eval.Strengths...)
		improvements = append(improvements, eval.AreasToImprove...)
		recommendations = append(recommendations, eval.Recommendations...)
	}

	n := len(turns)
	result := &Result{
		Grammar:       roundMean(grammar, n),
		Technical:     roundMean(technical, n),
		Depth:         roundMean(depth, n),
		Communication: roundMean(communication, n),
	}

	result.TotalScore = TotalScore(result.Grammar, result.Technical, result.Depth, result.Communication)
	result.Grade = Grade(result.TotalScore)
	result.DetailedFeedback = models.DetailedFeedback{
		Strengths:       dedupe(strengths, maxFeedbackItems),
		Improvements:    dedupe(improvements, maxFeedbackItems),
		Recommendations: dedupe(recommendations, maxFeedbackItems),
	}

	return result, nil
}

// TotalScore combines the four category averages into the weighted total.
func TotalScore(grammar, technical, depth, communication int) int {
	return int(math.Round(
		float64(technical)*weightTechnical +
			float64(communication)*weightCommunication +
			float64(depth)*weightDepth +
			float64(grammar)*weightGrammar))
}

// Grade maps a total score to a letter. Boundaries are inclusive on the
// lower end.
func Grade(totalScore int) string {
	switch {
	case totalScore >= 90:
		return "A"
	case totalScore >= 80:
		return "B"
	case totalScore >= 70:
		return "C"
	case totalScore >= 60:
		return "D"
	default:
		return "F"
	}
}

// roundMean averages sum over n, rounding half up.
func roundMean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

// dedupe removes exact duplicates preserving first-seen order and truncates
// to at most max entries. Always returns a non-nil slice.
func dedupe(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, max)
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}
