package llmtypes

import "encoding/json"

// Message roles understood by OpenAI-compatible chat APIs
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolChoiceAuto lets the model decide whether to call a tool
const ToolChoiceAuto = "auto"

// Message represents a chat message
type Message struct {
	Role       string     // "system", "user", "assistant", "tool"
	Content    string
	Name       string     // Tool name (for role="tool")
	ToolCallID string     // ID of the tool call this message answers (for role="tool")
	ToolCalls  []ToolCall // Tool calls made by assistant (for role="assistant")
}

// ToolCall represents a tool/function call from the LLM
type ToolCall struct {
	ID           string                 // Provider-assigned call ID
	Name         string                 // Name of the tool to call
	Arguments    map[string]interface{} // Decoded arguments, nil when RawArguments is not a JSON object
	RawArguments string                 // Arguments exactly as the model sent them
	ArgumentsErr error                  // Decode error for RawArguments, if any
}

// CompletionRequest is a request for LLM completion
type CompletionRequest struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
	ToolChoice   string // Ignored when Tools is empty
	MaxTokens    int
	Temperature  float64
}

// CompletionResponse is the first choice of the LLM response
type CompletionResponse struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
	Usage        TokenUsage
}

// TokenUsage tracks token usage
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Add returns the element-wise sum of two usages
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// ToolDefinition defines a tool for the LLM
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolResult is the outcome of executing a tool. Exactly one of Payload or
// Error is meaningful, selected by Success.
type ToolResult struct {
	Success bool
	Payload interface{}
	Error   string
}

// NewToolSuccess builds a successful result
func NewToolSuccess(payload interface{}) ToolResult {
	return ToolResult{Success: true, Payload: payload}
}

// NewToolError builds a failed result carrying a human-readable description
func NewToolError(description string) ToolResult {
	return ToolResult{Success: false, Error: description}
}

// Content serializes the result for a tool-role message
func (r ToolResult) Content() string {
	var v interface{}
	if r.Success {
		v = r.Payload
	} else {
		v = map[string]string{"error": r.Error}
	}
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]string{"error": "unserializable tool result"})
	}
	return string(data)
}
