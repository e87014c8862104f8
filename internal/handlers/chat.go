package handlers

import (
	"context"
	"fmt"

	"github.com/user/weatherbot/internal/logging"
	"github.com/user/weatherbot/internal/tui"
)

// ChatHandler runs the interactive chat
type ChatHandler struct {
	*BaseHandler
	session    *Session
	transcript string
	version    string
}

// NewChatHandler creates a new chat handler. When transcript is set the
// history is exported there after the UI exits.
func NewChatHandler(session *Session, transcript, version string) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(session.Config.BaseConfig, session.Logger),
		session:     session,
		transcript:  transcript,
		version:     version,
	}
}

// Handle blocks until the user leaves the chat
func (h *ChatHandler) Handle(ctx context.Context) error {
	h.Logger.Info("Starting chat handler")

	opts := tui.Options{
		Model: fmt.Sprintf("%s · %s", h.session.Config.LLM.Provider, h.session.Config.LLM.Model),
		Export: func(path string) error {
			return h.session.Export(path, h.version)
		},
	}

	if err := tui.Run(ctx, h.session.Orchestrator, h.session.Store, opts); err != nil {
		return err
	}

	h.Logger.Info("Chat ended", logging.Int("messages", h.session.Store.Len()))

	if h.transcript != "" && h.session.Store.Len() > 0 {
		return h.session.Export(h.transcript, h.version)
	}
	return nil
}
