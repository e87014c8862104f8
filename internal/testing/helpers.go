package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/user/weatherbot/internal/llm"
	"github.com/user/weatherbot/internal/llmtypes"
)

// MockLLMClient implements llm.LLMClient for testing
type MockLLMClient struct {
	mu             sync.Mutex
	Responses      []llm.CompletionResponse
	CallCount      int
	LastRequest    llm.CompletionRequest
	ShouldError    bool
	ErrorToReturn  error
	ErrorOnCall    int // 1-based call number that fails; 0 means every call when ShouldError is set
	RequestHistory []llm.CompletionRequest
	NoToolSupport  bool // Makes SupportsTools report false
}

// NewMockLLMClient creates a new mock LLM client with predefined responses
func NewMockLLMClient(responses ...llm.CompletionResponse) *MockLLMClient {
	return &MockLLMClient{
		Responses:      responses,
		RequestHistory: make([]llm.CompletionRequest, 0),
	}
}

// GenerateCompletion implements llm.LLMClient
func (m *MockLLMClient) GenerateCompletion(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRequest = req
	m.RequestHistory = append(m.RequestHistory, req)
	m.CallCount++

	if m.ShouldError && (m.ErrorOnCall == 0 || m.ErrorOnCall == m.CallCount) {
		return llm.CompletionResponse{}, m.ErrorToReturn
	}

	if err := ctx.Err(); err != nil {
		return llm.CompletionResponse{}, err
	}

	idx := m.CallCount - 1
	if idx >= len(m.Responses) {
		// Return last response if we've exhausted the list
		if len(m.Responses) > 0 {
			return m.Responses[len(m.Responses)-1], nil
		}
		return llm.CompletionResponse{}, fmt.Errorf("no responses configured")
	}

	return m.Responses[idx], nil
}

// SupportsTools implements llm.LLMClient
func (m *MockLLMClient) SupportsTools() bool {
	return !m.NoToolSupport
}

// GetProvider implements llm.LLMClient
func (m *MockLLMClient) GetProvider() string {
	return "mock"
}

// Calls returns the number of completed calls
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Requests returns a copy of every request received
func (m *MockLLMClient) Requests() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.CompletionRequest, len(m.RequestHistory))
	copy(out, m.RequestHistory)
	return out
}

// Reset resets the mock state
func (m *MockLLMClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = llm.CompletionRequest{}
	m.RequestHistory = make([]llm.CompletionRequest, 0)
	m.ShouldError = false
	m.ErrorToReturn = nil
	m.ErrorOnCall = 0
}

// SetError configures the mock to return an error on every call
func (m *MockLLMClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldError = true
	m.ErrorToReturn = err
}

// SetErrorOnCall configures the mock to fail only the given 1-based call
func (m *MockLLMClient) SetErrorOnCall(call int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldError = true
	m.ErrorToReturn = err
	m.ErrorOnCall = call
}

// MockWeather implements tools.WeatherLookup for testing
type MockWeather struct {
	mu      sync.Mutex
	Results map[string]llmtypes.ToolResult // Keyed by lower-cased location
	Default llmtypes.ToolResult
	Calls   []string
}

// NewMockWeather creates a lookup that fails for every location not in results
func NewMockWeather(results map[string]llmtypes.ToolResult) *MockWeather {
	normalized := make(map[string]llmtypes.ToolResult, len(results))
	for k, v := range results {
		normalized[strings.ToLower(k)] = v
	}
	return &MockWeather{
		Results: normalized,
		Default: llmtypes.NewToolError("weather service returned 404: city not found"),
	}
}

// Fetch implements tools.WeatherLookup
func (m *MockWeather) Fetch(ctx context.Context, location string) llmtypes.ToolResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, location)
	if r, ok := m.Results[strings.ToLower(location)]; ok {
		return r
	}
	return m.Default
}

// CallCount returns the number of lookups performed
func (m *MockWeather) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// AssertFileExists checks if a file exists at the given path
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist at the given path
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains the expected content
func AssertFileContains(t *testing.T, path, expected string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), expected) {
		t.Errorf("File %s does not contain expected content.\nExpected substring: %s\nActual content:\n%s",
			path, expected, string(content))
	}
}

// WriteFile writes content under dir, creating parent directories
func WriteFile(t *testing.T, dir, relPath, content string) string {
	t.Helper()

	fullPath := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}
