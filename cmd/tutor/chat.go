package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edgard/arabictutor/internal/client"
	"github.com/edgard/arabictutor/internal/logger"
	"github.com/edgard/arabictutor/internal/telegram"
	"github.com/edgard/arabictutor/internal/theme"
	"github.com/edgard/arabictutor/internal/tui"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the terminal chat client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if cfg.Chat.LogFile != "" {
				if err := os.MkdirAll(filepath.Dir(cfg.Chat.LogFile), 0o755); err != nil {
					return fmt.Errorf("failed to create log directory: %w", err)
				}
				f, err := os.OpenFile(cfg.Chat.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			log := logger.NewLoggerTo(w, cfg.Log.Level, cfg.Log.Format)

			themeFile := cfg.Chat.ThemeFile
			if themeFile == "" {
				if themeFile, err = theme.DefaultPath(); err != nil {
					return err
				}
			}

			backend := client.New(cfg.Client)
			return tui.Run(cmd.Context(), tui.Options{
				Asker:   backend,
				Contact: backend,
				Themes:  theme.NewFileStore(themeFile),
				Log:     log,
			})
		},
	}
}

func newTelegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run only the Telegram bot against a remote /ask API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Telegram.Token == "" {
				return fmt.Errorf("telegram.token is not set")
			}
			log := newLogger(cfg)

			backend := client.New(cfg.Client)
			bot, err := telegram.NewBot(cfg.Telegram.Token, backend, backend, log)
			if err != nil {
				return err
			}
			return bot.Run(cmd.Context())
		},
	}
}
