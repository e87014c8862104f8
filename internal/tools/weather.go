package tools

import (
	"context"

	"github.com/user/weatherbot/internal/llmtypes"
)

// WeatherToolName is the function name the model calls for weather lookups
const WeatherToolName = "get_current_weather"

// WeatherLookup fetches current conditions for a free-form location
type WeatherLookup interface {
	Fetch(ctx context.Context, location string) llmtypes.ToolResult
}

// WeatherTool exposes a WeatherLookup to the model
type WeatherTool struct {
	lookup WeatherLookup
}

// NewWeatherTool creates a new weather tool
func NewWeatherTool(lookup WeatherLookup) *WeatherTool {
	return &WeatherTool{lookup: lookup}
}

// Name returns the tool name
func (wt *WeatherTool) Name() string {
	return WeatherToolName
}

// Description returns the tool description
func (wt *WeatherTool) Description() string {
	return "Get the current weather in a given location. Only use this function if the user explicitly asks about weather in a real, existing city. Do not use for fictional places or when weather is not being asked about."
}

// Parameters returns the JSON schema for the tool parameters
func (wt *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"location": map[string]interface{}{
				"type":        "string",
				"description": "The city and state, e.g. San Francisco, CA. Must be a real city.",
			},
		},
		"required": []string{"location"},
	}
}

// Execute validates the location argument and performs a single lookup
func (wt *WeatherTool) Execute(ctx context.Context, params map[string]interface{}) llmtypes.ToolResult {
	location, err := requiredString(params, "location")
	if err != nil {
		return llmtypes.NewToolError(err.Error())
	}
	return wt.lookup.Fetch(ctx, location)
}
