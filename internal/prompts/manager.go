package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into the binary at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is implemented by the prompt manager and by test doubles.
type PromptProvider interface {
	SystemPrompt(mode string) (string, error)
	BuildPrompt(mode, variant string, data map[string]string) (string, error)
}

// loaded prompt template
type PromptTemplate struct {
	SystemPrompt string            `yaml:"system_prompt"`
	Variants     map[string]string `yaml:"variants"`
}

type PromptManager struct {
	templates map[string]*PromptTemplate // mode -> template
}

// NewPromptManager loads all embedded templates.
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{templates: make(map[string]*PromptTemplate)}
	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return pm, nil
}

// SystemPrompt returns the fixed rubric for the given mode.
func (pm *PromptManager) SystemPrompt(mode string) (string, error) {
	tmpl, exists := pm.templates[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}
	return tmpl.SystemPrompt, nil
}

// BuildPrompt renders the user prompt for the given mode and variant.
// Placeholders use {{.Key}} syntax and are filled by plain string
// replacement, no template compilation.
func (pm *PromptManager) BuildPrompt(mode, variant string, data map[string]string) (string, error) {
	tmpl, exists := pm.templates[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}
	prompt, exists := tmpl.Variants[variant]
	if !exists {
		return "", fmt.Errorf("variant '%s' not found for mode '%s'", variant, mode)
	}
	for key, value := range data {
		prompt = strings.ReplaceAll(prompt, "{{."+key+"}}", value)
	}
	return prompt, nil
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl PromptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		pm.templates[strings.TrimSuffix(entry.Name(), ".yaml")] = &tmpl
	}

	return nil
}
