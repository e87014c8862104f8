package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func SetJSONHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}

type MockServerOption func(*mockServerConfig)

type mockServerConfig struct {
	validateAuth bool
	authHeader   string
	authValue    string
}

func WithAuthValidation(header, value string) MockServerOption {
	return func(cfg *mockServerConfig) {
		cfg.validateAuth = true
		cfg.authHeader = header
		cfg.authValue = value
	}
}

func NewMockServer(t *testing.T, handler http.HandlerFunc, opts ...MockServerOption) *httptest.Server {
	t.Helper()
	cfg := &mockServerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	wrappedHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.validateAuth {
			if r.Header.Get(cfg.authHeader) != cfg.authValue {
				t.Errorf("Expected %s header '%s', got '%s'", cfg.authHeader, cfg.authValue, r.Header.Get(cfg.authHeader))
			}
		}
		handler(w, r)
	})

	server := httptest.NewServer(wrappedHandler)
	t.Cleanup(server.Close)
	return server
}

func UnauthorizedHandler(errorBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(errorBody))
	}
}

func RateLimitHandler(errorBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(errorBody))
	}
}

func InternalErrorHandler(errorBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(errorBody))
	}
}

// ChatCompletionJSON builds a non-streaming chat completion body with text content
func ChatCompletionJSON(content string) string {
	encoded, _ := json.Marshal(content)
	return fmt.Sprintf(`{"id":"chatcmpl-123","object":"chat.completion","created":1717236000,"model":"meta-llama/llama-4-scout-17b-16e-instruct","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}],"usage":{"prompt_tokens":120,"completion_tokens":20,"total_tokens":140}}`, encoded)
}

// ToolCallCompletionJSON builds a chat completion body carrying one tool call
func ToolCallCompletionJSON(id, name, args string) string {
	encodedArgs, _ := json.Marshal(args)
	return fmt.Sprintf(`{"id":"chatcmpl-124","object":"chat.completion","created":1717236000,"model":"meta-llama/llama-4-scout-17b-16e-instruct","choices":[{"index":0,"message":{"role":"assistant","content":null,"tool_calls":[{"id":"%s","type":"function","function":{"name":"%s","arguments":%s}}]},"finish_reason":"tool_calls"}],"usage":{"prompt_tokens":180,"completion_tokens":15,"total_tokens":195}}`, id, name, encodedArgs)
}

// ChatCompletionHandler replies with the given bodies in order, repeating the last one
type ChatCompletionHandler struct {
	mu       sync.Mutex
	bodies   []string
	requests []map[string]interface{}
}

func NewChatCompletionHandler(bodies ...string) *ChatCompletionHandler {
	return &ChatCompletionHandler{bodies: bodies}
}

func (h *ChatCompletionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	var req map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&req)
	h.requests = append(h.requests, req)
	idx := len(h.requests) - 1
	if idx >= len(h.bodies) {
		idx = len(h.bodies) - 1
	}
	h.mu.Unlock()

	SetJSONHeaders(w)
	if idx < 0 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(h.bodies[idx]))
}

// Requests returns the decoded request bodies received so far
func (h *ChatCompletionHandler) Requests() []map[string]interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]map[string]interface{}, len(h.requests))
	copy(out, h.requests)
	return out
}

// OpenWeatherHandler serves payloads keyed by lower-cased q; unknown cities get a 404
func OpenWeatherHandler(payloads map[string]string) http.HandlerFunc {
	normalized := make(map[string]string, len(payloads))
	for k, v := range payloads {
		normalized[strings.ToLower(k)] = v
	}
	return func(w http.ResponseWriter, r *http.Request) {
		SetJSONHeaders(w)
		if r.URL.Query().Get("appid") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(InvalidAPIKeyJSON))
			return
		}
		body, ok := normalized[strings.ToLower(r.URL.Query().Get("q"))]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(CityNotFoundJSON))
			return
		}
		w.Write([]byte(body))
	}
}

type RetryHandler struct {
	mu             sync.Mutex
	callCount      int
	failUntil      int
	failStatusCode int
	failBody       string
	successHandler http.HandlerFunc
}

func NewRetryHandler(failUntil, failStatusCode int, failBody string, successHandler http.HandlerFunc) *RetryHandler {
	return &RetryHandler{
		failUntil:      failUntil,
		failStatusCode: failStatusCode,
		failBody:       failBody,
		successHandler: successHandler,
	}
}

func (h *RetryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.callCount++
	fail := h.callCount <= h.failUntil
	h.mu.Unlock()

	if fail {
		w.WriteHeader(h.failStatusCode)
		w.Write([]byte(h.failBody))
		return
	}
	h.successHandler(w, r)
}

func (h *RetryHandler) CallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.callCount
}
