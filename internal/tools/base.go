package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/weatherbot/internal/llmtypes"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns a description of what the tool does
	Description() string

	// Parameters returns the JSON schema for the tool's parameters
	Parameters() map[string]interface{}

	// Execute runs the tool with the given parameters. Failures are reported
	// in the result rather than as a Go error so they can be shown to the model.
	Execute(ctx context.Context, params map[string]interface{}) llmtypes.ToolResult
}

// Definition returns the declaration advertised to the model for t
func Definition(t Tool) llmtypes.ToolDefinition {
	return llmtypes.ToolDefinition{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}

// requiredString extracts a non-blank string parameter
func requiredString(params map[string]interface{}, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing required argument: %s", key)
	}

	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}
