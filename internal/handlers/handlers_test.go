package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/errors"
	testutil "github.com/user/weatherbot/internal/testing"
)

// newTestConfig points both providers at local mock servers
func newTestConfig(t *testing.T, llmURL, weatherURL string) *config.ChatConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.ChatConfig{
		BaseConfig: config.BaseConfig{WorkDir: dir},
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			Model:    "test-model",
			APIKey:   "sk-test",
			BaseURL:  llmURL,
		},
		Weather: config.WeatherConfig{
			APIKey:  "owm-test",
			BaseURL: weatherURL,
			Units:   "metric",
		},
		Prompts: config.PromptsConfig{Dir: filepath.Join(dir, ".weatherbot", "prompts")},
	}
}

func newWeatherServer(t *testing.T) string {
	t.Helper()
	server := testutil.NewMockServer(t, testutil.OpenWeatherHandler(map[string]string{
		"Paris": testutil.ParisWeatherJSON,
	}))
	return server.URL
}

func TestAskHandler_WeatherQuestion(t *testing.T) {
	llmHandler := testutil.NewChatCompletionHandler(
		testutil.ToolCallCompletionJSON("call_1", "get_current_weather", `{"location":"Paris"}`),
		testutil.ChatCompletionJSON("It's 18°C and clear in Paris."),
	)
	llmServer := testutil.NewMockServer(t, llmHandler.ServeHTTP)
	cfg := newTestConfig(t, llmServer.URL, newWeatherServer(t))

	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var out bytes.Buffer
	if err := NewAskHandler(session, "What's the weather in Paris?", &out).Handle(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if out.String() != "It's 18°C and clear in Paris.\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}

	requests := llmHandler.Requests()
	if len(requests) != 2 {
		t.Fatalf("Expected 2 model requests, got %d", len(requests))
	}
	if _, ok := requests[1]["tools"]; ok {
		t.Error("Expected follow-up request without tools")
	}
	messages, _ := requests[1]["messages"].([]interface{})
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages in follow-up, got %d", len(messages))
	}
	toolMsg, _ := messages[2].(map[string]interface{})
	if toolMsg["role"] != "tool" || toolMsg["tool_call_id"] != "call_1" {
		t.Errorf("Unexpected tool message: %v", toolMsg)
	}
	if content, _ := toolMsg["content"].(string); !strings.Contains(content, "clear sky") {
		t.Errorf("Expected weather payload in tool message, got %q", content)
	}

	if session.Store.Len() != 2 {
		t.Errorf("Expected 2 committed messages, got %d", session.Store.Len())
	}
}

func TestAskHandler_UnknownCityUsesPromptOverride(t *testing.T) {
	llmHandler := testutil.NewChatCompletionHandler(
		testutil.ToolCallCompletionJSON("call_1", "get_current_weather", `{"location":"Atlantis"}`),
	)
	llmServer := testutil.NewMockServer(t, llmHandler.ServeHTTP)
	cfg := newTestConfig(t, llmServer.URL, newWeatherServer(t))
	testutil.WriteFile(t, cfg.Prompts.Dir, "custom.yaml", "weather_unavailable: \"No weather for that place.\"\n")

	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var out bytes.Buffer
	if err := NewAskHandler(session, "Weather in Atlantis?", &out).Handle(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.TrimSpace(out.String()) != "No weather for that place." {
		t.Errorf("Expected overridden apology, got %q", out.String())
	}
	if len(llmHandler.Requests()) != 1 {
		t.Errorf("Expected a single model request, got %d", len(llmHandler.Requests()))
	}
}

func TestAskHandler_WritesTranscript(t *testing.T) {
	llmServer := testutil.NewMockServer(t, testutil.NewChatCompletionHandler(
		testutil.ChatCompletionJSON("Why don't scientists trust atoms? They make up everything."),
	).ServeHTTP)
	cfg := newTestConfig(t, llmServer.URL, newWeatherServer(t))

	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(cfg.WorkDir, "joke.json")
	var out bytes.Buffer
	handler := NewAskHandler(session, "Tell me a joke", &out).WithTranscript(path, "test")
	if err := handler.Handle(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	testutil.AssertFileContains(t, path, "Tell me a joke")
	testutil.AssertFileContains(t, path, "make up everything")
}

func TestAskHandler_ModelFailure(t *testing.T) {
	llmServer := testutil.NewMockServer(t, testutil.InternalErrorHandler(`{"error":{"message":"boom"}}`))
	cfg := newTestConfig(t, llmServer.URL, newWeatherServer(t))

	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var out bytes.Buffer
	err = NewAskHandler(session, "Tell me a joke", &out).Handle(context.Background())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if code := errors.ExitCodeFor(err); code != errors.ExitLLMError {
		t.Errorf("Expected exit code %d, got %d", errors.ExitLLMError, code)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
	if session.Store.Len() != 0 {
		t.Errorf("Expected nothing committed, got %d", session.Store.Len())
	}
}

func TestNewSession_UnsupportedProvider(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.LLM.Provider = "anthropic"

	_, err := NewSession(cfg, nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if code := errors.ExitCodeFor(err); code != errors.ExitConfigError {
		t.Errorf("Expected exit code %d, got %d", errors.ExitConfigError, code)
	}
}

func TestSession_ExportEmptyHistory(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(cfg.WorkDir, "empty.html")
	if err := session.Export(path, "test"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read transcript: %v", err)
	}
	if !strings.Contains(string(data), "No messages.") {
		t.Error("Expected empty transcript marker")
	}
}
