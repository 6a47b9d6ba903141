package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/logger"
)

// NewTelegramBot creates a new Telegram bot instance.
func NewTelegramBot(token string, log *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully")
	return b, nil
}

// applyMiddleware wraps a handler function with a slice of middleware.
// The first middleware in the slice is the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// HandlerRegistrar is the part of *bot.Bot handlers are registered on.
type HandlerRegistrar interface {
	RegisterHandler(handlerType bot.HandlerType, pattern string, matchType bot.MatchType, f bot.HandlerFunc, m ...bot.Middleware) string
}

// RegisterHandlers registers command handlers, applying their middleware.
func RegisterHandlers(b HandlerRegistrar, log *slog.Logger, registered map[string]RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "handler_registry")

	for _, h := range registered {
		if h.Handler == nil {
			log.Warn("Skipping registration for nil handler", "pattern", h.Pattern)
			continue
		}
		b.RegisterHandler(h.HandlerType, h.Pattern, h.MatchType, applyMiddleware(h.Handler, h.Middleware))
		log.Debug("Registered handler", "pattern", h.Pattern, "middleware_count", len(h.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registered))
	return nil
}

// Bot runs the tutor on Telegram.
type Bot struct {
	tg       *bot.Bot
	sessions *Sessions
	log      *slog.Logger
}

// NewBot creates the Telegram bot with the tutor's commands registered and
// the question handler as default.
func NewBot(token string, asker chat.Asker, contact chat.ContactSender, log *slog.Logger) (*Bot, error) {
	if log == nil {
		log = logger.Discard()
	}

	// The default handler must be passed to bot.New, but it needs the
	// sessions, which need the bot to send messages.
	var questions bot.HandlerFunc
	tg, err := NewTelegramBot(token, log,
		bot.WithMiddlewares(logger.TelegramMiddleware(log)),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, u *models.Update) {
			questions(ctx, b, u)
		}),
	)
	if err != nil {
		return nil, err
	}

	deps := HandlerDeps{
		Logger:    log,
		Sessions:  NewSessions(asker, contact, tg, log),
		Messenger: tg,
	}
	questions = NewQuestionHandler(deps)
	if err := RegisterHandlers(tg, log, RegisterAllCommands(deps)); err != nil {
		return nil, err
	}

	return &Bot{tg: tg, sessions: deps.Sessions, log: log.With("component", "telegram_bot")}, nil
}

// Run polls Telegram for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("Starting Telegram bot listener...")
	b.tg.Start(ctx)
	b.log.Info("Telegram bot listener stopped.", "chats", b.sessions.Len())

	if ctx.Err() == nil {
		return fmt.Errorf("telegram listener stopped unexpectedly")
	}
	return nil
}
