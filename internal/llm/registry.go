package llm

import "fmt"

// defines a function that creates a new evaluator instance
type EvaluatorFactory func() (Evaluator, error)

// global registry of available providers
var providers = make(map[string]EvaluatorFactory)

// RegisterProvider registers an evaluator factory with the given name.
// Providers register themselves on package import.
func RegisterProvider(name string, factory EvaluatorFactory) {
	providers[name] = factory
}

// NewEvaluator creates an evaluator instance based on the given name.
func NewEvaluator(name string) (Evaluator, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}
