package tools

import (
	"fmt"

	"github.com/user/weatherbot/internal/llmtypes"
)

// Registry holds the tools advertised to the model, in registration order.
// It is built once at startup and read-only afterwards.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry creates a registry containing the given tools
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry creates the registry with the weather tool
func NewDefaultRegistry(lookup WeatherLookup) *Registry {
	r, _ := NewRegistry(NewWeatherTool(lookup))
	return r
}

// Register adds a tool; names must be unique
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("cannot register nil tool")
	}
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Get resolves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Declarations returns the definitions sent with every first model request
func (r *Registry) Declarations() []llmtypes.ToolDefinition {
	defs := make([]llmtypes.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, Definition(r.tools[name]))
	}
	return defs
}

// Names returns the registered tool names in order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	return len(r.order)
}
