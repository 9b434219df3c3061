package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"intervue/internal/llm"
	"intervue/internal/prompts"
)

// Client evaluates interview answers through the Gemini API.
type Client struct {
	client  *genai.Client
	config  *Config
	prompts prompts.PromptProvider
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		return nil, err
	}

	return &Client{
		client:  client,
		config:  config,
		prompts: promptManager,
	}, nil
}

// EvaluateAnswer sends one question-answer pair to Gemini and parses the
// structured evaluation back. The caller bounds the context with a timeout;
// cancellation surfaces as an upstream error.
func (c *Client) EvaluateAnswer(ctx context.Context, questionText, answerText string, ec llm.EvalContext) (*llm.EvalResult, error) {
	variant := ec.Mode
	if variant == "" {
		variant = llm.ModeTest
	}

	prompt, err := c.prompts.BuildPrompt("evaluate", variant, map[string]string{
		"Context":  candidateContext(ec),
		"Question": questionText,
		"Answer":   answerText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation prompt: %w", err)
	}

	systemPrompt, err := c.prompts.SystemPrompt("evaluate")
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation rubric: %w", err)
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeUpstream,
			Message:  "Failed to generate evaluation",
			Err:      err,
		}
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeUpstream,
			Message:  "No response generated",
		}
	}

	raw, err := result.Text()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeUpstream,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if raw == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeUpstream,
			Message:  "Empty response generated",
		}
	}

	return parseEvaluation(raw)
}

func (c *Client) GetProviderName() string {
	return "gemini"
}

// candidateContext summarizes the candidate's history for the prompt.
func candidateContext(ec llm.EvalContext) string {
	if ec.Username == "" {
		return "New candidate"
	}
	if len(ec.PastTotalScores) == 0 {
		return "Candidate: " + ec.Username + ". Previous average scores: No history"
	}
	scores := make([]string, len(ec.PastTotalScores))
	for i, s := range ec.PastTotalScores {
		scores[i] = strconv.Itoa(s)
	}
	return "Candidate: " + ec.Username + ". Previous average scores: " + strings.Join(scores, ", ")
}
