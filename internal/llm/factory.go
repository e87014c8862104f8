package llm

import (
	"fmt"

	"github.com/user/weatherbot/internal/config"
)

// Factory creates LLM clients
type Factory struct {
	retryClient *RetryClient
}

// NewFactory creates a new LLM factory sharing one retry client across clients
func NewFactory(retryClient *RetryClient) *Factory {
	return &Factory{
		retryClient: retryClient,
	}
}

// NewFactoryFromConfig builds a factory whose retry client honors the configured
// model timeout and retry policy
func NewFactoryFromConfig(cfg *config.ChatConfig) *Factory {
	return NewFactory(NewRetryClientWithTimeout(cfg.LLM.GetTimeout(), RetryConfigFrom(cfg.Retry)))
}

// CreateClient creates an LLM client based on the provider configuration
func (f *Factory) CreateClient(cfg config.LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderGroq, config.ProviderOpenAI, config.ProviderOllama:
		return NewOpenAIClient(cfg, f.retryClient), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: groq, openai, ollama)", cfg.Provider)
	}
}
