package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/arabictutor/internal/chat"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Sessions  *Sessions
	Messenger Messenger
}

// RegisteredHandler represents a command handler with its pattern and middleware.
type RegisteredHandler struct {
	HandlerType bot.HandlerType
	Pattern     string
	Handler     bot.HandlerFunc
	Middleware  []bot.Middleware
	MatchType   bot.MatchType
}

// RegisterAllCommands returns every command handler keyed by command.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: bot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   bot.MatchTypeCommandStartOnly,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: bot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewStartHandler(deps),
		MatchType:   bot.MatchTypeCommandStartOnly,
	}
	handlers["/prefs"] = RegisteredHandler{
		HandlerType: bot.HandlerTypeMessageText,
		Pattern:     "prefs",
		Handler:     NewPrefsHandler(deps),
		MatchType:   bot.MatchTypeCommandStartOnly,
	}
	handlers["/contact"] = RegisteredHandler{
		HandlerType: bot.HandlerTypeMessageText,
		Pattern:     "contact",
		Handler:     NewContactHandler(deps),
		MatchType:   bot.MatchTypeCommandStartOnly,
	}

	return handlers
}

func optionValues(opts []chat.Option) string {
	vals := make([]string, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	return strings.Join(vals, ", ")
}

func helpText() string {
	return fmt.Sprintf(`Welcome to the Arabic tutor!

Set your preferences first:
/prefs name; level; week; gender; language

level: %s
week: 1-%d
gender: %s
language: %s

Then just send your question.
To reach us: /contact name; email; message`,
		strings.Join(chat.Levels, ", "),
		chat.WeeksPerLevel,
		strings.Join(chat.Genders, ", "),
		optionValues(chat.Languages))
}

func (d HandlerDeps) reply(ctx context.Context, chatID int64, text string) {
	if _, err := d.Messenger.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		d.Logger.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// NewStartHandler returns a handler for /start and /help.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "start")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		if update.Message == nil {
			log.WarnContext(ctx, "Start handler received update with nil message", "update_id", update.ID)
			return
		}
		log.InfoContext(ctx, "Handling /start command", "chat_id", update.Message.Chat.ID)
		deps.reply(ctx, update.Message.Chat.ID, helpText())
	}
}

// commandArgs returns the text after the leading /command, split on ';'
// into n trimmed fields. Missing fields are empty; extra separators stay in
// the last field.
func commandArgs(text string, n int) []string {
	rest := ""
	if i := strings.IndexAny(text, " \n"); i >= 0 {
		rest = text[i+1:]
	}
	fields := make([]string, n)
	for i, part := range strings.SplitN(rest, ";", n) {
		fields[i] = strings.TrimSpace(part)
	}
	return fields
}

// normalizeWeek accepts "3", "03", or "week03".
func normalizeWeek(v string) string {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return chat.WeekID(n)
	}
	return strings.ToLower(v)
}

// NewPrefsHandler returns a handler for /prefs name; level; week; gender; language.
func NewPrefsHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "prefs")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		chatID := update.Message.Chat.ID
		f := commandArgs(update.Message.Text, 5)

		err := deps.Sessions.Session(chatID).SubmitPreferences(chat.Preferences{
			Name:     f[0],
			Level:    strings.ToLower(f[1]),
			Week:     normalizeWeek(f[2]),
			Gender:   strings.ToLower(f[3]),
			Language: strings.ToLower(f[4]),
		})
		if err != nil {
			log.InfoContext(ctx, "Rejected preferences", "chat_id", chatID, "error", err)
		}
	}
}

// NewContactHandler returns a handler for /contact name; email; message.
func NewContactHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "contact")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		chatID := update.Message.Chat.ID
		f := commandArgs(update.Message.Text, 3)

		err := deps.Sessions.ContactForm(chatID).Submit(ctx, chat.ContactSubmission{Name: f[0], Email: f[1], Message: f[2]})
		if err != nil {
			log.InfoContext(ctx, "Rejected contact form", "chat_id", chatID, "error", err)
		}
	}
}

// NewQuestionHandler returns the default handler: any text that is not a
// command is sent to the tutor through the chat's session.
func NewQuestionHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "question")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.Text == "" || strings.HasPrefix(update.Message.Text, "/") {
			return
		}
		chatID := update.Message.Chat.ID
		session := deps.Sessions.Session(chatID)

		if _, ok := session.Preferences(); !ok {
			deps.reply(ctx, chatID, "Please set your preferences first.\n\n"+helpText())
			return
		}

		ex, ok := session.Begin(update.Message.Text)
		if !ok {
			return
		}

		typingCtx, stopTyping := context.WithCancel(ctx)
		go keepTyping(typingCtx, deps.Messenger, chatID, log)
		session.Complete(ctx, ex)
		stopTyping()
	}
}
