package testing

import (
	"github.com/user/weatherbot/internal/llm"
)

// ParisWeatherJSON is an OpenWeatherMap current-weather payload
const ParisWeatherJSON = `{
  "coord": {"lon": 2.3488, "lat": 48.8534},
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
  "base": "stations",
  "main": {"temp": 18.4, "feels_like": 17.9, "temp_min": 16.1, "temp_max": 20.2, "pressure": 1019, "humidity": 62},
  "visibility": 10000,
  "wind": {"speed": 3.6, "deg": 250},
  "clouds": {"all": 0},
  "dt": 1717236000,
  "sys": {"type": 2, "id": 2041230, "country": "FR", "sunrise": 1717213800, "sunset": 1717271400},
  "timezone": 7200,
  "id": 2988507,
  "name": "Paris",
  "cod": 200
}`

// TokyoWeatherJSON is an OpenWeatherMap current-weather payload
const TokyoWeatherJSON = `{
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds"}],
  "main": {"temp": 24.1, "feels_like": 24.6, "temp_min": 22.9, "temp_max": 25.3, "pressure": 1008, "humidity": 71},
  "wind": {"speed": 5.1},
  "sys": {"country": "JP"},
  "name": "Tokyo",
  "cod": 200
}`

// CityNotFoundJSON is the provider's error body for an unknown city
const CityNotFoundJSON = `{"cod":"404","message":"city not found"}`

// InvalidAPIKeyJSON is the provider's error body for a bad key
const InvalidAPIKeyJSON = `{"cod":401,"message":"Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`

// DirectAnswerResponse is a model reply with no tool call
func DirectAnswerResponse(text string) llm.CompletionResponse {
	return llm.CompletionResponse{
		Content:      text,
		FinishReason: "stop",
		Usage:        llm.TokenUsage{InputTokens: 120, OutputTokens: 20, TotalTokens: 140},
	}
}

// WeatherToolCallResponse is a model reply requesting get_current_weather
func WeatherToolCallResponse(callID, location string) llm.CompletionResponse {
	raw := `{"location":"` + location + `"}`
	return llm.CompletionResponse{
		FinishReason: "tool_calls",
		ToolCalls: []llm.ToolCall{{
			ID:           callID,
			Name:         "get_current_weather",
			Arguments:    map[string]interface{}{"location": location},
			RawArguments: raw,
		}},
		Usage: llm.TokenUsage{InputTokens: 180, OutputTokens: 15, TotalTokens: 195},
	}
}
