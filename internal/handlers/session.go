package handlers

import (
	"fmt"

	"github.com/user/weatherbot/internal/chat"
	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/conversation"
	"github.com/user/weatherbot/internal/errors"
	"github.com/user/weatherbot/internal/export"
	"github.com/user/weatherbot/internal/llm"
	"github.com/user/weatherbot/internal/logging"
	"github.com/user/weatherbot/internal/prompts"
	"github.com/user/weatherbot/internal/tools"
	"github.com/user/weatherbot/internal/weather"
)

// Session wires the collaborators of one chat session
type Session struct {
	Config       *config.ChatConfig
	Logger       *logging.Logger
	Orchestrator *chat.Orchestrator
	Registry     *tools.Registry
	Store        *conversation.Store
}

// NewSession builds a session talking to the configured model provider
func NewSession(cfg *config.ChatConfig, logger *logging.Logger) (*Session, error) {
	client, err := llm.NewFactoryFromConfig(cfg).CreateClient(cfg.LLM)
	if err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}
	return NewSessionWithClient(cfg, client, logger)
}

// NewSessionWithClient builds a session around an existing model client
func NewSessionWithClient(cfg *config.ChatConfig, client llm.LLMClient, logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	promptManager, err := prompts.NewManagerWithOverrides(cfg.Prompts.Dir)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to load prompts: %v", err))
	}
	if overrides := promptManager.ListOverrides(); len(overrides) > 0 {
		logger.Info("Loaded prompt overrides",
			logging.Strings("prompts", overrides),
			logging.String("dir", cfg.Prompts.Dir),
		)
	}

	registry := tools.NewDefaultRegistry(weather.NewClient(cfg.Weather, logger))

	orchestrator := chat.NewOrchestrator(client, registry, promptManager, logger, chat.Options{
		MaxTokens:   cfg.LLM.GetMaxTokens(),
		Temperature: cfg.LLM.Temperature,
		Units:       cfg.Weather.GetUnits(),
	})

	logger.Info("Session ready",
		logging.String("provider", client.GetProvider()),
		logging.String("model", cfg.LLM.Model),
		logging.Strings("tools", registry.Names()),
	)

	return &Session{
		Config:       cfg,
		Logger:       logger,
		Orchestrator: orchestrator,
		Registry:     registry,
		Store:        conversation.NewStore(),
	}, nil
}

// Export writes the current history to path; the extension picks the format
func (s *Session) Export(path, version string) error {
	t := export.NewTranscript(s.Store.All(), export.Options{
		Provider: s.Config.LLM.Provider,
		Model:    s.Config.LLM.Model,
		Version:  version,
	})
	if err := export.WriteFile(path, t); err != nil {
		return err
	}

	s.Logger.Info("Transcript exported",
		logging.String("path", path),
		logging.Int("messages", len(t.Messages)),
	)
	return nil
}
