package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is the weatherbot release version
const Version = "1.0.0"

var (
	debugFlag    bool
	verboseFlag  bool
	workDir      string
	providerFlag string
	modelFlag    string
	unitsFlag    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "weatherbot",
	Short: "Conversational assistant with live weather lookups",
	Long: `Chat with a hosted language model that can look up current weather.

Ask anything; when you ask about the weather in a real city the model calls
the OpenWeatherMap API and answers from live conditions.

Required environment:
  GROQ_API_KEY (or WEATHERBOT_LLM_API_KEY)
  OPENWEATHER_API_KEY (or WEATHERBOT_WEATHER_API_KEY)`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Also write log output to stderr")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", ".", "Directory holding .weatherbot/ (config, prompts, logs)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Model provider (groq, openai, ollama)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model name")
	rootCmd.PersistentFlags().StringVar(&unitsFlag, "units", "", "Weather units (metric, imperial, standard)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("weatherbot %s\n", Version))
}
