// Package chat runs one conversational turn: first model call, optional
// weather tool execution, optional follow-up model call, and commit to history.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/weatherbot/internal/conversation"
	"github.com/user/weatherbot/internal/errors"
	"github.com/user/weatherbot/internal/llm"
	"github.com/user/weatherbot/internal/llmtypes"
	"github.com/user/weatherbot/internal/logging"
	"github.com/user/weatherbot/internal/prompts"
	"github.com/user/weatherbot/internal/tools"
)

// Default generation parameters
const (
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.0
)

// Options tunes generation for every model call of a turn
type Options struct {
	MaxTokens   int
	Temperature float64
	Units       string // Exposed to the system prompt template as {{.Units}}
}

// TurnResult describes how a turn was answered
type TurnResult struct {
	Answer     string
	Kind       Kind
	ToolCalled bool
	ToolName   string
	Location   string               // Location argument, when the weather tool was requested
	ToolResult *llmtypes.ToolResult // Nil unless a tool was executed
	ModelCalls int
	States     []State
	Usage      llm.TokenUsage
	Duration   time.Duration
}

// Orchestrator drives the tool-calling loop. It holds no session state; the
// conversation store is passed to every call.
type Orchestrator struct {
	client      llm.LLMClient
	registry    *tools.Registry
	prompts     *prompts.Manager
	logger      *logging.Logger
	useTools    bool
	maxTokens   int
	temperature float64
	units       string
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	client llm.LLMClient,
	registry *tools.Registry,
	promptManager *prompts.Manager,
	logger *logging.Logger,
	opts Options,
) *Orchestrator {
	if promptManager == nil {
		promptManager = prompts.NewDefaultManager()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	logger = logger.Named("chat")
	useTools := client.SupportsTools()
	if !useTools {
		logger.Warn("Model client does not support tool calling; weather lookups are disabled",
			logging.String("provider", client.GetProvider()),
		)
	}

	return &Orchestrator{
		client:      client,
		registry:    registry,
		prompts:     promptManager,
		logger:      logger,
		useTools:    useTools,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		units:       opts.Units,
	}
}

// HandleTurn answers one user message. On success the user message and the
// answer are appended to store together; on error the store is untouched.
func (o *Orchestrator) HandleTurn(ctx context.Context, store *conversation.Store, input string) (*TurnResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.NewEmptyInputError()
	}

	start := time.Now()
	result := &TurnResult{States: []State{StateAwaitingUserInput}}

	history := toLLMMessages(store.All())
	history = append(history, llm.Message{Role: llmtypes.RoleUser, Content: input})
	systemPrompt := o.systemPrompt()

	req := llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     history,
		MaxTokens:    o.maxTokens,
		Temperature:  o.temperature,
	}
	if o.useTools {
		req.Tools = o.registry.Declarations()
		req.ToolChoice = llmtypes.ToolChoiceAuto
	}

	o.transition(result, StateModelInvoked)
	o.logger.Info("Calling LLM",
		logging.String("provider", o.client.GetProvider()),
		logging.Int("history_messages", len(history)),
		logging.Int("tool_count", len(req.Tools)),
	)

	resp, err := o.client.GenerateCompletion(ctx, req)
	if err != nil {
		o.logger.Error("LLM call failed", logging.Error(err))
		return nil, err
	}
	o.recordCall(result, resp)

	switch turn := ParseTurn(resp).(type) {
	case DirectAnswer:
		o.transition(result, StateDirectAnswer)
		result.Kind = KindDirect
		result.Answer = turn.Text

	case ToolRequest:
		o.transition(result, StateToolRequested)
		if turn.Ignored > 0 {
			o.logger.Warn("Ignoring additional tool calls",
				logging.Int("ignored", turn.Ignored),
				logging.String("honored", turn.Call.Name),
			)
		}

		result.ToolCalled = true
		result.ToolName = turn.Call.Name
		if loc, ok := turn.Call.Arguments["location"].(string); ok {
			result.Location = loc
		}

		toolResult := o.executeTool(ctx, turn.Call)
		result.ToolResult = &toolResult
		o.transition(result, StateToolExecuted)

		if !toolResult.Success {
			result.Kind = KindToolFailed
			result.Answer = o.apology()
			break
		}

		o.transition(result, StateModelReinvoked)
		followUp := make([]llm.Message, 0, len(history)+2)
		followUp = append(followUp, history...)
		followUp = append(followUp,
			llm.Message{
				Role:      llmtypes.RoleAssistant,
				Content:   turn.Content,
				ToolCalls: []llm.ToolCall{turn.Call},
			},
			llm.Message{
				Role:       llmtypes.RoleTool,
				Name:       turn.Call.Name,
				ToolCallID: turn.Call.ID,
				Content:    toolResult.Content(),
			},
		)

		o.logger.Info("Calling LLM with tool result",
			logging.String("tool", turn.Call.Name),
			logging.Int("history_messages", len(followUp)),
		)

		resp, err = o.client.GenerateCompletion(ctx, llm.CompletionRequest{
			SystemPrompt: systemPrompt,
			Messages:     followUp,
			MaxTokens:    o.maxTokens,
			Temperature:  o.temperature,
		})
		if err != nil {
			o.logger.Error("LLM follow-up call failed", logging.Error(err))
			return nil, err
		}
		o.recordCall(result, resp)

		result.Kind = KindTool
		result.Answer = resp.Content
	}

	o.transition(result, StateFinalAnswerReady)
	store.Append(
		conversation.NewMessage(conversation.RoleUser, input),
		conversation.NewMessage(conversation.RoleAssistant, result.Answer),
	)
	o.transition(result, StateAwaitingUserInput)

	result.Duration = time.Since(start)
	o.logger.Info("Turn completed",
		logging.String("kind", result.Kind.String()),
		logging.Bool("tool_called", result.ToolCalled),
		logging.Int("model_calls", result.ModelCalls),
		logging.Int("total_tokens", result.Usage.TotalTokens),
		logging.Duration("duration", result.Duration),
	)

	return result, nil
}

// executeTool resolves and runs a tool call. Unknown tools and undecodable
// arguments become failed results.
func (o *Orchestrator) executeTool(ctx context.Context, call llm.ToolCall) llmtypes.ToolResult {
	tool, ok := o.registry.Get(call.Name)
	if !ok {
		err := errors.NewToolExecutionError(call.Name, fmt.Errorf("tool not registered"))
		o.logger.Warn("Tool not found", logging.String("tool", call.Name), logging.Error(err))
		return llmtypes.NewToolError(fmt.Sprintf("unknown tool %q", call.Name))
	}

	if call.ArgumentsErr != nil {
		o.logger.Warn("Tool arguments could not be decoded",
			logging.String("tool", call.Name),
			logging.String("arguments", call.RawArguments),
			logging.Error(call.ArgumentsErr),
		)
		return llmtypes.NewToolError(fmt.Sprintf("invalid arguments for %s", call.Name))
	}

	o.logger.Info("Executing tool",
		logging.String("tool", call.Name),
		logging.String("call_id", call.ID),
		logging.String("arguments", call.RawArguments),
	)

	result := tool.Execute(ctx, call.Arguments)
	if !result.Success {
		o.logger.Warn("Tool execution failed",
			logging.String("tool", call.Name),
			logging.String("reason", result.Error),
		)
	}
	return result
}

func (o *Orchestrator) recordCall(result *TurnResult, resp llm.CompletionResponse) {
	result.ModelCalls++
	result.Usage = result.Usage.Add(resp.Usage)
	o.logger.Info("LLM response received",
		logging.Int("input_tokens", resp.Usage.InputTokens),
		logging.Int("output_tokens", resp.Usage.OutputTokens),
		logging.Int("tool_calls", len(resp.ToolCalls)),
		logging.String("finish_reason", resp.FinishReason),
	)
}

func (o *Orchestrator) transition(result *TurnResult, next State) {
	result.States = append(result.States, next)
	o.logger.Debug("State transition", logging.String("state", next.String()))
}

// systemPrompt renders the configured system prompt, falling back to the raw
// text when it is not a valid template.
func (o *Orchestrator) systemPrompt() string {
	rendered, err := o.prompts.Render(prompts.KeySystemPrompt, map[string]interface{}{
		"Units": o.units,
		"Date":  time.Now().Format("2006-01-02"),
	})
	if err == nil {
		return strings.TrimSpace(rendered)
	}

	raw, getErr := o.prompts.Get(prompts.KeySystemPrompt)
	if getErr != nil {
		return ""
	}
	o.logger.Warn("System prompt template failed to render", logging.Error(err))
	return strings.TrimSpace(raw)
}

// apology returns the fixed reply used when the weather tool fails
func (o *Orchestrator) apology() string {
	if text, err := o.prompts.Get(prompts.KeyWeatherUnavailable); err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	text, _ := prompts.NewDefaultManager().Get(prompts.KeyWeatherUnavailable)
	return strings.TrimSpace(text)
}

// toLLMMessages maps committed history to request messages (role and content only)
func toLLMMessages(history []conversation.Message) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}
