package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/errors"
	"github.com/user/weatherbot/internal/logging"
)

// InitLogger creates a configured logger for CLI commands.
// Logs always go to the JSON file under cfg.Logging.LogDir; console output
// is enabled by --verbose or logging.console, except while allowConsole is
// false (the chat UI owns the terminal).
//
// The caller is responsible for calling logger.Sync() when done.
func InitLogger(cfg *config.ChatConfig, debug, verbose, allowConsole bool) (*logging.Logger, error) {
	logCfg := &logging.Config{
		LogDir:         cfg.Logging.LogDir,
		FileLevel:      logging.LevelFromString(cfg.Logging.FileLevel),
		ConsoleLevel:   logging.LevelFromString(cfg.Logging.ConsoleLevel),
		EnableCaller:   debug || cfg.Debug,
		ConsoleEnabled: allowConsole && (verbose || cfg.Logging.Console),
	}
	if debug {
		logCfg.FileLevel = logging.LevelFromString("debug")
	}

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, errors.WrapError(err, "failed to initialize logger", errors.ExitIOError)
	}

	return logger, nil
}

// cliOverrides maps the persistent flags the user actually set to dotted config keys
func cliOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := map[string]interface{}{}

	if debugFlag {
		overrides["debug"] = true
	}

	flags := map[string]struct {
		key   string
		value *string
	}{
		"provider": {"llm.provider", &providerFlag},
		"model":    {"llm.model", &modelFlag},
		"units":    {"weather.units", &unitsFlag},
	}
	for name, f := range flags {
		if cmd.Flags().Changed(name) {
			overrides[f.key] = *f.value
		}
	}

	return overrides
}

// reportError prints err for the user and returns the process exit code
func reportError(w io.Writer, err error) int {
	if appErr, ok := errors.AsAppError(err); ok {
		fmt.Fprintln(w, appErr.GetUserMessage())
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return errors.ExitCodeFor(err).Int()
}
