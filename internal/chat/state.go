package chat

// State is a step of the per-turn state machine
type State int

const (
	StateAwaitingUserInput State = iota
	StateModelInvoked
	StateDirectAnswer
	StateToolRequested
	StateToolExecuted
	StateModelReinvoked
	StateFinalAnswerReady
)

func (s State) String() string {
	switch s {
	case StateAwaitingUserInput:
		return "awaiting_user_input"
	case StateModelInvoked:
		return "model_invoked"
	case StateDirectAnswer:
		return "direct_answer"
	case StateToolRequested:
		return "tool_requested"
	case StateToolExecuted:
		return "tool_executed"
	case StateModelReinvoked:
		return "model_reinvoked"
	case StateFinalAnswerReady:
		return "final_answer_ready"
	default:
		return "unknown"
	}
}

// Kind classifies how a turn's answer was produced
type Kind int

const (
	// KindDirect means the model answered without calling a tool
	KindDirect Kind = iota
	// KindTool means the answer came from a second call that saw the tool result
	KindTool
	// KindToolFailed means the tool failed and the fixed apology was returned
	KindToolFailed
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindTool:
		return "tool"
	case KindToolFailed:
		return "tool_failed"
	default:
		return "unknown"
	}
}
