package cmd

import (
	"github.com/spf13/cobra"
	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/errors"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect weatherbot settings",
	Long: `Inspect the effective configuration.

Configuration is merged from (lowest to highest precedence):
  - Built-in defaults
  - Environment (WEATHERBOT_*, GROQ_API_KEY, OPENWEATHER_API_KEY, .env)
  - Global: ~/.weatherbot.yaml
  - Project: <dir>/.weatherbot/config.yaml
  - Command-line flags`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML (secrets redacted)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.DecodeChatConfig(workDir, cliOverrides(cmd))
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return errors.WrapError(err, "failed to encode configuration", errors.ExitIOError)
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, "failed to encode configuration", errors.ExitIOError)
	}

	if verr := config.Validate(cfg); verr != nil {
		cmd.PrintErrln("\nWarning: this configuration cannot start a chat yet:")
		cmd.PrintErrln(verr.Error())
	}
	return nil
}
