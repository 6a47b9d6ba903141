package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/edgard/arabictutor/internal/config"
	"github.com/edgard/arabictutor/internal/logger"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tutor",
		Short: "Arabic tutor chat",
		Long: `tutor answers questions about weekly Arabic lessons. It serves the /ask
API, provides a terminal chat client and a Telegram bot, and imports the
lesson materials into its database.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newChatCmd(),
		newTelegramCmd(),
		newImportCmd(),
		newSeedCmd(),
	)
	return root
}

// loadConfig reads .env into the environment, if present, then the configuration.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return config.Load(cfgFile)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
}
