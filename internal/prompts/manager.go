package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	textTemplate "text/template"

	"gopkg.in/yaml.v3"
)

// Prompt keys
const (
	KeySystemPrompt       = "system_prompt"
	KeyWeatherUnavailable = "weather_unavailable"
)

const (
	sourceBuiltin = "builtin"
	sourceProject = "project"
)

//go:embed defaults.yaml
var defaultPrompts []byte

// Manager handles loading and rendering prompt templates
type Manager struct {
	prompts map[string]string
	sources map[string]string // Track which file provided each prompt (for debugging)
}

// NewDefaultManager creates a manager holding only the built-in prompts
func NewDefaultManager() *Manager {
	pm := &Manager{
		prompts: make(map[string]string),
		sources: make(map[string]string),
	}
	if err := pm.merge(defaultPrompts, sourceBuiltin); err != nil {
		panic(fmt.Sprintf("prompts: invalid built-in defaults: %v", err))
	}
	return pm
}

// NewManagerWithOverrides creates a manager with built-ins + project overrides.
// A missing override directory is not an error.
func NewManagerWithOverrides(projectDir string) (*Manager, error) {
	pm := NewDefaultManager()

	if projectDir != "" {
		if _, err := os.Stat(projectDir); err == nil {
			if err := pm.loadDirectory(projectDir, sourceProject); err != nil {
				return nil, fmt.Errorf("failed to load project prompts: %w", err)
			}
		}
	}

	if err := pm.validateRequiredPrompts(); err != nil {
		return nil, err
	}

	return pm, nil
}

// NewManagerFromMap creates a prompt manager from a map (useful for testing)
func NewManagerFromMap(prompts map[string]string) *Manager {
	sources := make(map[string]string)
	for key := range prompts {
		sources[key] = "test:map"
	}
	return &Manager{
		prompts: prompts,
		sources: sources,
	}
}

// loadDirectory loads all YAML files from a directory in name order
func (pm *Manager) loadDirectory(dir, source string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		if err := pm.merge(data, fmt.Sprintf("%s:%s", source, entry.Name())); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
	}

	return nil
}

// merge decodes a flat YAML map; later loads override earlier
func (pm *Manager) merge(data []byte, source string) error {
	var prompts map[string]string
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return err
	}
	for key, value := range prompts {
		pm.prompts[key] = value
		pm.sources[key] = source
	}
	return nil
}

// validateRequiredPrompts ensures critical prompts exist and are usable
func (pm *Manager) validateRequiredPrompts() error {
	if strings.TrimSpace(pm.prompts[KeyWeatherUnavailable]) == "" {
		return fmt.Errorf("prompt '%s' must not be empty", KeyWeatherUnavailable)
	}
	return nil
}

// Get returns a raw prompt by name
func (pm *Manager) Get(name string) (string, error) {
	prompt, ok := pm.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt '%s' not found (available: %v)", name, pm.getAvailableNames())
	}
	return prompt, nil
}

// Render renders a prompt template with the given variables
func (pm *Manager) Render(name string, vars map[string]interface{}) (string, error) {
	promptTemplate, err := pm.Get(name)
	if err != nil {
		return "", err
	}

	tmpl, err := textTemplate.New(name).Option("missingkey=error").Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", name, err)
	}

	return buf.String(), nil
}

// getAvailableNames returns a sorted list of available prompt names
func (pm *Manager) getAvailableNames() []string {
	names := make([]string, 0, len(pm.prompts))
	for name := range pm.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPrompt checks if a prompt exists
func (pm *Manager) HasPrompt(name string) bool {
	_, ok := pm.prompts[name]
	return ok
}

// GetSource returns which file provided a prompt (for debugging)
func (pm *Manager) GetSource(name string) string {
	if source, ok := pm.sources[name]; ok {
		return source
	}
	return "unknown"
}

// ListOverrides returns all prompts that were overridden from project
func (pm *Manager) ListOverrides() []string {
	var overrides []string
	for key, source := range pm.sources {
		if strings.HasPrefix(source, sourceProject) {
			overrides = append(overrides, key)
		}
	}
	sort.Strings(overrides)
	return overrides
}

// CountPrompts returns the total number of loaded prompts
func (pm *Manager) CountPrompts() int {
	return len(pm.prompts)
}
