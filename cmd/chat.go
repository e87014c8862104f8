package cmd

import (
	"github.com/spf13/cobra"
	"github.com/user/weatherbot/internal/config"
	"github.com/user/weatherbot/internal/handlers"
)

var chatTranscript string

// chatCmd represents the interactive chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive weather chat",
	Long: `Open a terminal chat session.

Commands inside the chat:
  /clear         clear the conversation (also ctrl+l)
  /export FILE   write the transcript (.html or .json)
  /help          show example questions
  /quit          leave (also esc or ctrl+c)

History lives in memory only and is gone when the session ends, unless
--transcript is given.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatTranscript, "transcript", "", "Write the transcript to FILE on exit (.html or .json)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadChatConfig(workDir, cliOverrides(cmd))
	if err != nil {
		return err
	}

	logger, err := InitLogger(cfg, debugFlag, verboseFlag, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	session, err := handlers.NewSession(cfg, logger)
	if err != nil {
		return err
	}

	return handlers.NewChatHandler(session, chatTranscript, Version).Handle(cmd.Context())
}
