package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/voice-search-api/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voice-search-api",
	Short: "Voice Search API server",
	Long: `Voice Search API - phonetic search over transcribed voice clips

Uploaded recordings are transcribed asynchronously into timestamped clips.
Clips can then be searched by phonetic similarity in three modes:
literal/alphanumeric, Korean pronunciation, and Japanese reading.

Features:
  • Asynchronous transcription jobs with cancellation and live progress
  • Korean liaison/assimilation-aware pronunciation matching
  • Romaji and hangul projection into kana for Japanese-mode queries
  • On-demand clip audio extraction with a content-addressed cache`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(setupLogging)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// setupLogging configures the global zerolog logger from the persistent flags.
func setupLogging() {
	levelStr, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonLogs, _ := rootCmd.PersistentFlags().GetBool("json-logs")

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !jsonLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadConfig initializes the configuration for commands that need it.
func loadConfig() error {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		return err
	}
	return nil
}
