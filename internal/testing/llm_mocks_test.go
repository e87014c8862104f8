package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/user/weatherbot/internal/llm"
	"github.com/user/weatherbot/internal/llmtypes"
)

func TestChatCompletionJSON_IsValid(t *testing.T) {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(ChatCompletionJSON(`He said "hi"`)), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if err := json.Unmarshal([]byte(ToolCallCompletionJSON("call_1", "get_current_weather", `{"location":"Paris"}`)), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
}

func TestChatCompletionHandler_Sequence(t *testing.T) {
	handler := NewChatCompletionHandler(ChatCompletionJSON("first"), ChatCompletionJSON("second"))
	server := NewMockServer(t, handler.ServeHTTP)

	for _, want := range []string{"first", "second", "second"} {
		resp, err := http.Post(server.URL, "application/json", strings.NewReader(`{"model":"m"}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if !strings.Contains(string(body), want) {
			t.Errorf("Expected response to contain %q, got: %s", want, string(body))
		}
	}

	if len(handler.Requests()) != 3 {
		t.Errorf("Expected 3 recorded requests, got %d", len(handler.Requests()))
	}
}

func TestOpenWeatherHandler(t *testing.T) {
	server := NewMockServer(t, OpenWeatherHandler(map[string]string{"Paris": ParisWeatherJSON}))

	resp, err := http.Get(server.URL + "?q=paris&appid=k")
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for Paris, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "?q=Atlantis&appid=k")
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for Atlantis, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "city not found") {
		t.Errorf("Expected city not found body, got %s", string(body))
	}
}

func TestRetryHandler(t *testing.T) {
	handler := NewRetryHandler(2, http.StatusTooManyRequests, `{"error":"rate limit"}`,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	server := NewMockServer(t, handler.ServeHTTP)

	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
		resp.Body.Close()
		if i < 2 && resp.StatusCode != http.StatusTooManyRequests {
			t.Errorf("Request %d: expected 429, got %d", i+1, resp.StatusCode)
		}
		if i == 2 && resp.StatusCode != http.StatusOK {
			t.Errorf("Request 3: expected 200, got %d", resp.StatusCode)
		}
	}

	if handler.CallCount() != 3 {
		t.Errorf("Expected 3 calls, got %d", handler.CallCount())
	}
}

func TestMockLLMClient_ResponsesAndErrors(t *testing.T) {
	mock := NewMockLLMClient(DirectAnswerResponse("a"), DirectAnswerResponse("b"))

	resp, _ := mock.GenerateCompletion(context.Background(), llm.CompletionRequest{})
	if resp.Content != "a" {
		t.Errorf("Expected 'a', got %q", resp.Content)
	}
	resp, _ = mock.GenerateCompletion(context.Background(), llm.CompletionRequest{})
	if resp.Content != "b" {
		t.Errorf("Expected 'b', got %q", resp.Content)
	}
	resp, _ = mock.GenerateCompletion(context.Background(), llm.CompletionRequest{})
	if resp.Content != "b" {
		t.Errorf("Expected last response to repeat, got %q", resp.Content)
	}

	mock.Reset()
	mock.SetErrorOnCall(2, errors.New("boom"))
	if _, err := mock.GenerateCompletion(context.Background(), llm.CompletionRequest{}); err != nil {
		t.Errorf("Expected first call to succeed, got %v", err)
	}
	if _, err := mock.GenerateCompletion(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Error("Expected second call to fail")
	}
	if mock.Calls() != 2 || len(mock.Requests()) != 2 {
		t.Errorf("Expected 2 recorded calls, got %d/%d", mock.Calls(), len(mock.Requests()))
	}
}

func TestMockWeather(t *testing.T) {
	mock := NewMockWeather(map[string]llmtypes.ToolResult{
		"Paris": llmtypes.NewToolSuccess(map[string]interface{}{"temperature": 18.4}),
	})

	if r := mock.Fetch(context.Background(), "paris"); !r.Success {
		t.Error("Expected Paris lookup to succeed case-insensitively")
	}
	if r := mock.Fetch(context.Background(), "Atlantis"); r.Success {
		t.Error("Expected Atlantis lookup to fail")
	}
	if mock.CallCount() != 2 {
		t.Errorf("Expected 2 calls, got %d", mock.CallCount())
	}
}
