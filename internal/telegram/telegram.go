// Package telegram is the Telegram front-end of the tutor. Every Telegram
// chat gets its own chat session; commands capture preferences and contact
// messages, and any other text is asked to the tutor.
package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/logger"
)

const sendTimeout = 15 * time.Second

// Messenger is the part of *bot.Bot the front-end uses.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// chatView renders a session into one Telegram chat.
type chatView struct {
	messenger Messenger
	chatID    int64
	log       *slog.Logger
}

func (v *chatView) send(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if _, err := v.messenger.SendMessage(ctx, &bot.SendMessageParams{ChatID: v.chatID, Text: text}); err != nil {
		v.log.ErrorContext(ctx, "Failed to send message", "chat_id", v.chatID, "error", err)
	}
}

// The user's own text is already visible in Telegram.
func (v *chatView) AppendUserMessage(string) {}

func (v *chatView) AppendBotMessage(text string) { v.send(text) }
func (v *chatView) ShowError(message string)     { v.send("⚠️ " + message) }
func (v *chatView) Alert(message string)         { v.send(message) }
func (v *chatView) ShowChat()                    {}
func (v *chatView) CloseContact()                {}

type conversation struct {
	session *chat.Session
	contact *chat.ContactForm
}

// Sessions holds one conversation per Telegram chat.
type Sessions struct {
	asker     chat.Asker
	contact   chat.ContactSender
	messenger Messenger
	log       *slog.Logger

	mu    sync.Mutex
	chats map[int64]*conversation
}

// NewSessions creates the per-chat session registry. contact may be nil, in
// which case contact submissions are only logged.
func NewSessions(asker chat.Asker, contact chat.ContactSender, messenger Messenger, log *slog.Logger) *Sessions {
	if log == nil {
		log = logger.Discard()
	}
	return &Sessions{
		asker:     asker,
		contact:   contact,
		messenger: messenger,
		log:       log.With("component", "telegram_sessions"),
		chats:     make(map[int64]*conversation),
	}
}

func (s *Sessions) get(chatID int64) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.chats[chatID]; ok {
		return c
	}
	log := s.log.With("chat_id", chatID)
	view := &chatView{messenger: s.messenger, chatID: chatID, log: log}
	c := &conversation{
		session: chat.NewSession(s.asker, view, log),
		contact: chat.NewContactForm(s.contact, view, log),
	}
	s.chats[chatID] = c
	s.log.Debug("Created chat session", "chat_id", chatID)
	return c
}

// Session returns the chat session for chatID, creating it on first use.
func (s *Sessions) Session(chatID int64) *chat.Session { return s.get(chatID).session }

// ContactForm returns the contact form for chatID.
func (s *Sessions) ContactForm(chatID int64) *chat.ContactForm { return s.get(chatID).contact }

// Len returns the number of chats with a session.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}
