package chat

import (
	"github.com/user/weatherbot/internal/llm"
)

// Turn is the model's reply to the first request, parsed once:
// either a DirectAnswer or a ToolRequest.
type Turn interface {
	isTurn()
}

// DirectAnswer is a reply with no tool call
type DirectAnswer struct {
	Text string
}

// ToolRequest is a reply asking for a tool. Only the first call is honored.
type ToolRequest struct {
	Call    llm.ToolCall
	Content string // Assistant text that accompanied the call, usually empty
	Ignored int    // Number of additional calls that were dropped
}

func (DirectAnswer) isTurn() {}
func (ToolRequest) isTurn()  {}

// ParseTurn classifies a completion response
func ParseTurn(resp llm.CompletionResponse) Turn {
	if len(resp.ToolCalls) == 0 {
		return DirectAnswer{Text: resp.Content}
	}
	return ToolRequest{
		Call:    resp.ToolCalls[0],
		Content: resp.Content,
		Ignored: len(resp.ToolCalls) - 1,
	}
}
