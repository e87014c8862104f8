package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/handlers"
)

var askTranscript string

// askCmd answers one question and exits
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question",
	Long: `Answer one question through the same tool-calling loop as the chat and
print the answer to stdout.

Examples:
  weatherbot ask "What's the weather like in Tokyo?"
  weatherbot ask --units imperial "How's the weather in New York?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askTranscript, "transcript", "", "Also write the exchange to FILE (.html or .json)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadChatConfig(workDir, cliOverrides(cmd))
	if err != nil {
		return err
	}

	logger, err := InitLogger(cfg, debugFlag, verboseFlag, true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	session, err := handlers.NewSession(cfg, logger)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	handler := handlers.NewAskHandler(session, question, cmd.OutOrStdout())
	if askTranscript != "" {
		handler.WithTranscript(askTranscript, Version)
	}

	return handler.Handle(cmd.Context())
}
