package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/user/weatherbot/internal/logging"
)

// AskHandler answers a single question and prints the answer
type AskHandler struct {
	*BaseHandler
	session    *Session
	question   string
	transcript string
	version    string
	out        io.Writer
}

// NewAskHandler creates a new ask handler
func NewAskHandler(session *Session, question string, out io.Writer) *AskHandler {
	return &AskHandler{
		BaseHandler: NewBaseHandler(session.Config.BaseConfig, session.Logger),
		session:     session,
		question:    question,
		out:         out,
	}
}

// WithTranscript exports the turn to path once answered
func (h *AskHandler) WithTranscript(path, version string) *AskHandler {
	h.transcript = path
	h.version = version
	return h
}

// Handle runs the turn
func (h *AskHandler) Handle(ctx context.Context) error {
	h.Logger.Info("Starting ask handler", logging.Int("question_length", len(h.question)))

	result, err := h.session.Orchestrator.HandleTurn(ctx, h.session.Store, h.question)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(h.out, result.Answer); err != nil {
		return err
	}

	h.Logger.Debug("Ask completed",
		logging.String("kind", result.Kind.String()),
		logging.Int("model_calls", result.ModelCalls),
		logging.Duration("duration", result.Duration),
	)

	if h.transcript != "" {
		return h.session.Export(h.transcript, h.version)
	}
	return nil
}
