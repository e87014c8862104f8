// Package tui is the interactive terminal chat surface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/weatherbot/internal/chat"
	"github.com/user/weatherbot/internal/conversation"
	"github.com/user/weatherbot/internal/errors"
)

// ExampleQuestions are shown in the help panel
var ExampleQuestions = []string{
	"What's the weather like in Tokyo?",
	"How's the weather in New York?",
}

// TurnRunner answers one user message against a store
type TurnRunner interface {
	HandleTurn(ctx context.Context, store *conversation.Store, input string) (*chat.TurnResult, error)
}

// ExportFunc writes the current history to path
type ExportFunc func(path string) error

// Options configures the chat model
type Options struct {
	Title  string
	Model  string // Shown in the header
	Export ExportFunc
}

type turnDoneMsg struct {
	result *chat.TurnResult
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// ChatModel is the bubbletea model for a chat session
type ChatModel struct {
	runner TurnRunner
	store  *conversation.Store
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	busy     bool
	pending  string
	showHelp bool
	notice   string
	err      error
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewChatModel creates a chat model bound to runner and store
func NewChatModel(ctx context.Context, runner TurnRunner, store *conversation.Store, opts Options) ChatModel {
	if opts.Title == "" {
		opts.Title = "Weather Chat"
	}

	input := textinput.New()
	input.Placeholder = "Ask about the weather, or type /help"
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(StyleSpinner),
	)

	vp := viewport.New(80, 20)

	ctx, cancel := context.WithCancel(ctx)

	return ChatModel{
		runner:   runner,
		store:    store,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		input:    input,
		spinner:  sp,
		viewport: vp,
	}
}

// Init initializes the model
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Busy reports whether a turn is in flight
func (m ChatModel) Busy() bool {
	return m.busy
}

// Update handles messages
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Keystrokes are dropped while a turn is in flight
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+l":
			m.clear()
		case "enter":
			cmd := m.submit()
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case turnDoneMsg:
		m.busy = false
		m.pending = ""
		if msg.err != nil {
			m.err = msg.err
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.notice = fmt.Sprintf("%s Transcript written to %s", IconSuccess, msg.path)
		}
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

// submit handles the enter key: slash commands or a new turn
func (m *ChatModel) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" {
		return nil
	}

	m.err = nil
	m.notice = ""

	if strings.HasPrefix(text, "/") {
		return m.command(text)
	}

	m.busy = true
	m.pending = text
	return tea.Batch(m.runTurn(text), m.spinner.Tick)
}

func (m *ChatModel) command(text string) tea.Cmd {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/clear":
		m.clear()
	case "/help":
		m.showHelp = !m.showHelp
	case "/quit", "/exit":
		m.quitting = true
		m.cancel()
		return tea.Quit
	case "/export":
		if len(fields) < 2 {
			m.err = errors.NewValidationError("usage: /export FILE (.html or .json)")
			return nil
		}
		if m.opts.Export == nil {
			m.err = errors.NewValidationError("export is not available in this session")
			return nil
		}
		path, export := fields[1], m.opts.Export
		return func() tea.Msg {
			return exportDoneMsg{path: path, err: export(path)}
		}
	default:
		m.err = errors.NewValidationError(fmt.Sprintf("unknown command %s (try /help)", fields[0]))
	}
	return nil
}

func (m *ChatModel) clear() {
	m.store.Clear()
	m.err = nil
	m.notice = "History cleared"
}

func (m ChatModel) runTurn(text string) tea.Cmd {
	ctx, runner, store := m.ctx, m.runner, m.store
	return func() tea.Msg {
		result, err := runner.HandleTurn(ctx, store, text)
		return turnDoneMsg{result: result, err: err}
	}
}

// refresh re-renders the history into the viewport
func (m *ChatModel) refresh() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, msg := range m.store.All() {
		b.WriteString(renderMessage(msg.Role, msg.Content, width))
		b.WriteString("\n")
	}
	if m.pending != "" {
		b.WriteString(renderMessage(conversation.RoleUser, m.pending, width))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func renderMessage(role, content string, width int) string {
	label := StyleAssistantLabel.Render("Assistant")
	if role == conversation.RoleUser {
		label = StyleUserLabel.Render("You")
	}
	body := StyleMessage.Width(max(width-2, 10)).Render(content)
	return label + "\n" + body
}

// View renders the UI
func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}

	header := StyleTitle.Render(m.opts.Title)
	if m.opts.Model != "" {
		header += " " + StyleMuted.Render(m.opts.Model)
	}

	var sections []string
	sections = append(sections, header)

	if m.showHelp {
		sections = append(sections, helpPanel())
	} else if m.store.Len() == 0 && !m.busy {
		sections = append(sections, StyleSubtitle.Render("Ask me about the weather in any city."))
	}

	sections = append(sections, m.viewport.View())

	switch {
	case m.busy:
		sections = append(sections, m.spinner.View()+" "+StyleMuted.Render("Thinking..."))
	case m.err != nil:
		sections = append(sections, StyleError.Render(IconError+" "+errorText(m.err)))
	case m.notice != "":
		sections = append(sections, StyleSuccess.Render(m.notice))
	default:
		sections = append(sections, "")
	}

	sections = append(sections, m.input.View())
	sections = append(sections, StyleMuted.Render("enter send • ctrl+l clear • /help • esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func helpPanel() string {
	var b strings.Builder
	b.WriteString("This assistant answers general questions and looks up\n")
	b.WriteString("live weather for real cities.\n\n")
	b.WriteString("Try asking:\n")
	for _, q := range ExampleQuestions {
		b.WriteString(fmt.Sprintf("  %s %s\n", IconBullet, q))
	}
	b.WriteString("\nCommands:\n")
	b.WriteString("  /clear         clear chat history (ctrl+l)\n")
	b.WriteString("  /export FILE   write transcript (.html or .json)\n")
	b.WriteString("  /help          toggle this panel\n")
	b.WriteString("  /quit          leave the chat")
	return StyleBox.Render(b.String())
}

func errorText(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}
	return err.Error()
}

// Run starts the interactive chat and blocks until the user quits
func Run(ctx context.Context, runner TurnRunner, store *conversation.Store, opts Options) error {
	model := NewChatModel(ctx, runner, store, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
