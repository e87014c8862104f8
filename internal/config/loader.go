package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/user/weatherbot/internal/errors"
)

// EnvPrefix is the prefix for all weatherbot environment variables
const EnvPrefix = "WEATHERBOT"

// ProjectDirName is the per-directory folder holding config, prompts and logs
const ProjectDirName = ".weatherbot"

// defaults are registered with viper so AutomaticEnv can resolve every key
var defaults = map[string]interface{}{
	"work_dir":                   ".",
	"debug":                      false,
	"llm.provider":               ProviderGroq,
	"llm.model":                  "meta-llama/llama-4-scout-17b-16e-instruct",
	"llm.api_key":                "",
	"llm.base_url":               "",
	"llm.timeout":                60,
	"llm.max_tokens":             300,
	"llm.temperature":            0.0,
	"weather.api_key":            "",
	"weather.base_url":           "https://api.openweathermap.org/data/2.5/weather",
	"weather.units":              "metric",
	"weather.timeout":            10,
	"retry.max_attempts":         1,
	"retry.multiplier":           1,
	"retry.max_wait_per_attempt": 30,
	"retry.max_total_wait":       120,
	"logging.log_dir":            "",
	"logging.file_level":         "info",
	"logging.console_level":      "debug",
	"logging.console":            false,
	"prompts.dir":                "",
}

// legacyEnv lists the environment variable names the original deployment used.
// They are consulted after the WEATHERBOT_* name.
var legacyEnv = map[string]string{
	"llm.api_key":     "GROQ_API_KEY",
	"weather.api_key": "OPENWEATHER_API_KEY",
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, legacy := range legacyEnv {
		_ = v.BindEnv(key, envName(key), legacy)
	}

	return &Loader{v: v}
}

// Load merges all sources for the given working directory.
// Precedence: CLI > <dir>/.weatherbot/config.yaml > ~/.weatherbot.yaml > Environment > Defaults
func (l *Loader) Load(workDir string, cliOverrides map[string]interface{}) (*viper.Viper, error) {
	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}

	if err := l.loadProjectConfig(workDir); err != nil {
		return nil, err
	}

	l.applyCLIOverrides(cliOverrides)

	return l.v, nil
}

// loadGlobalConfig loads configuration from ~/.weatherbot.yaml
func (l *Loader) loadGlobalConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil // Not a fatal error
	}

	globalConfig := filepath.Join(homeDir, ".weatherbot.yaml")
	if _, err := os.Stat(globalConfig); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(globalConfig)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(globalConfig, err)
	}

	return nil
}

// loadProjectConfig loads configuration from <dir>/.weatherbot/config.yaml
func (l *Loader) loadProjectConfig(workDir string) error {
	if workDir == "" {
		workDir = "."
	}

	configPath := filepath.Join(workDir, ProjectDirName, "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(configPath)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(configPath, err)
	}

	return nil
}

// applyCLIOverrides applies CLI flag overrides; nil values mean "flag not set"
func (l *Loader) applyCLIOverrides(overrides map[string]interface{}) {
	for key, value := range overrides {
		if value != nil {
			l.v.Set(key, value)
		}
	}
}

// LoadChatConfig loads, defaults and validates the chat configuration
func LoadChatConfig(workDir string, cliOverrides map[string]interface{}) (*ChatConfig, error) {
	cfg, err := DecodeChatConfig(workDir, cliOverrides)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DecodeChatConfig loads and defaults the configuration without validating it.
// `config show` uses it so an incomplete setup can still be inspected.
func DecodeChatConfig(workDir string, cliOverrides map[string]interface{}) (*ChatConfig, error) {
	v, err := NewLoader().Load(workDir, cliOverrides)
	if err != nil {
		return nil, err
	}

	cfg := &ChatConfig{}
	decoderConfig := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
		TagName:          "mapstructure",
		Squash:           true,
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, errors.WrapError(err, "failed to decode chat config", errors.ExitConfigError)
	}

	if workDir != "" && cfg.WorkDir == "." {
		cfg.WorkDir = workDir
	}
	applyChatDefaults(cfg)

	return cfg, nil
}

func applyChatDefaults(cfg *ChatConfig) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Logging.LogDir == "" {
		cfg.Logging.LogDir = filepath.Join(cfg.WorkDir, ProjectDirName, "logs")
	}
	if cfg.Prompts.Dir == "" {
		cfg.Prompts.Dir = filepath.Join(cfg.WorkDir, ProjectDirName, "prompts")
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
}

// Validate checks that the configuration can run a chat session
func Validate(cfg *ChatConfig) error {
	if _, ok := ProviderBaseURLs[cfg.LLM.Provider]; !ok {
		return errors.NewInvalidEnvVarError(envName("llm.provider"), cfg.LLM.Provider, "Must be one of: groq, openai, ollama")
	}

	if cfg.LLM.RequiresAPIKey() && cfg.LLM.APIKey == "" {
		return errors.NewMissingEnvVarError(envName("llm.api_key"), "API key for the model provider (GROQ_API_KEY is also accepted)")
	}

	if cfg.Weather.APIKey == "" {
		return errors.NewMissingEnvVarError(envName("weather.api_key"), "OpenWeatherMap API key (OPENWEATHER_API_KEY is also accepted)")
	}

	if !validUnits[cfg.Weather.GetUnits()] {
		return errors.NewInvalidEnvVarError(envName("weather.units"), cfg.Weather.Units, "Must be one of: metric, imperial, standard")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return errors.NewInvalidEnvVarError(envName("llm.temperature"), fmt.Sprintf("%g", cfg.LLM.Temperature), "Must be between 0 and 2")
	}

	return nil
}

// envName returns the WEATHERBOT_* variable for a dotted key
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
