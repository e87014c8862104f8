package config

import (
	"time"

	"github.com/user/weatherbot/internal/logging"
)

// Supported model providers. All of them speak the OpenAI chat-completions protocol.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ProviderBaseURLs maps a provider to its default API base URL
var ProviderBaseURLs = map[string]string{
	ProviderGroq:   "https://api.groq.com/openai/v1",
	ProviderOpenAI: "https://api.openai.com/v1",
	ProviderOllama: "http://localhost:11434/v1",
}

// Supported unit systems for the weather provider
var validUnits = map[string]bool{
	"metric":   true,
	"imperial": true,
	"standard": true,
}

// BaseConfig holds common configuration for all handlers
type BaseConfig struct {
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"` // Directory holding .weatherbot/
	Debug   bool   `mapstructure:"debug" yaml:"debug"`
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"` // groq, openai, ollama
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"` // Optional, defaults per provider
	Timeout     int     `mapstructure:"timeout" yaml:"timeout"`   // Timeout in seconds
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// WeatherConfig holds weather provider configuration
type WeatherConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Units   string `mapstructure:"units" yaml:"units"`     // metric, imperial, standard
	Timeout int    `mapstructure:"timeout" yaml:"timeout"` // Timeout in seconds
}

// RetryConfig holds HTTP retry configuration for model calls
type RetryConfig struct {
	MaxAttempts       int `mapstructure:"max_attempts" yaml:"max_attempts"`                 // Default: 1 (no retry)
	Multiplier        int `mapstructure:"multiplier" yaml:"multiplier"`                     // Default: 1
	MaxWaitPerAttempt int `mapstructure:"max_wait_per_attempt" yaml:"max_wait_per_attempt"` // Default: 30 seconds
	MaxTotalWait      int `mapstructure:"max_total_wait" yaml:"max_total_wait"`             // Default: 120 seconds
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	LogDir       string `mapstructure:"log_dir" yaml:"log_dir"`
	FileLevel    string `mapstructure:"file_level" yaml:"file_level"`       // debug, info, warn, error
	ConsoleLevel string `mapstructure:"console_level" yaml:"console_level"` // debug, info, warn, error
	Console      bool   `mapstructure:"console" yaml:"console"`
}

// PromptsConfig points at YAML prompt overrides
type PromptsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ChatConfig is the full configuration of a chat session
type ChatConfig struct {
	BaseConfig `mapstructure:",squash" yaml:",inline"`
	LLM        LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Weather    WeatherConfig `mapstructure:"weather" yaml:"weather"`
	Retry      RetryConfig   `mapstructure:"retry" yaml:"retry"`
	Logging    LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Prompts    PromptsConfig `mapstructure:"prompts" yaml:"prompts"`
}

// GetTimeout returns the timeout as a time.Duration
func (c *LLMConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetMaxTokens returns the max tokens with a default
func (c *LLMConfig) GetMaxTokens() int {
	if c.MaxTokens <= 0 {
		return 300
	}
	return c.MaxTokens
}

// GetBaseURL returns the configured base URL or the provider default
func (c *LLMConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return ProviderBaseURLs[c.Provider]
}

// RequiresAPIKey reports whether the provider needs an API key
func (c *LLMConfig) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}

// GetTimeout returns the weather timeout as a time.Duration
func (c *WeatherConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetUnits returns the unit system with a default
func (c *WeatherConfig) GetUnits() string {
	if c.Units == "" {
		return "metric"
	}
	return c.Units
}

// GetMaxAttempts returns the number of attempts per model call, at least 1
func (c *RetryConfig) GetMaxAttempts() int {
	if c.MaxAttempts <= 0 {
		return 1
	}
	return c.MaxAttempts
}

// Redacted returns a copy with secrets masked, suitable for display
func (c ChatConfig) Redacted() ChatConfig {
	c.LLM.APIKey = logging.Redact(c.LLM.APIKey)
	c.Weather.APIKey = logging.Redact(c.Weather.APIKey)
	return c
}
