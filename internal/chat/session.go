package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/logger"
)

// Session is the per-visitor controller. It owns the preference record and
// numbers every exchange so that a reply overtaken by a newer one is dropped.
type Session struct {
	asker Asker
	view  View
	log   *slog.Logger

	mu       sync.Mutex
	prefs    *Preferences
	seq      uint64
	rendered uint64
}

// Exchange is one question in flight.
type Exchange struct {
	ID      string
	Seq     uint64
	Request api.AskRequest
}

// NewSession creates a session that asks questions through asker and renders into view.
func NewSession(asker Asker, view View, log *slog.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{
		asker: asker,
		view:  view,
		log:   log.With("component", "chat_session"),
	}
}

// Preferences returns a copy of the stored preferences, if captured.
func (s *Session) Preferences() (Preferences, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs == nil {
		return Preferences{}, false
	}
	return *s.prefs, true
}

// SubmitPreferences validates form and, when complete, stores it, switches
// the view to the chat surface, and greets the user in the chosen language.
// On failure the view is alerted and the stored record is left untouched.
func (s *Session) SubmitPreferences(form Preferences) error {
	form.Name = strings.TrimSpace(form.Name)

	if err := validate.Struct(form); err != nil {
		s.log.Debug("Rejected incomplete preferences", "error", err)
		s.view.Alert(MsgIncompletePreferences)
		return fmt.Errorf("%w: %v", ErrIncompletePreferences, err)
	}

	s.mu.Lock()
	stored := form
	s.prefs = &stored
	s.mu.Unlock()

	s.log.Info("Selected preferences",
		"name", form.Name,
		"level", form.Level,
		"week", form.Week,
		"gender", form.Gender,
		"language", form.Language)

	s.view.ShowChat()
	s.view.AppendBotMessage(WelcomeMessage(Language(form.Language), form.Name))
	return nil
}

// Begin renders the user's message and prepares its request. It returns
// false without touching the view for blank input or before preferences
// have been captured.
func (s *Session) Begin(input string) (*Exchange, bool) {
	question := strings.TrimSpace(input)
	if question == "" {
		return nil, false
	}

	s.mu.Lock()
	if s.prefs == nil {
		s.mu.Unlock()
		s.log.Warn("Ignoring message", "error", ErrNoPreferences)
		return nil, false
	}
	prefs := *s.prefs
	s.seq++
	ex := &Exchange{
		ID:  uuid.NewString(),
		Seq: s.seq,
		Request: api.AskRequest{
			Level:    prefs.Level,
			Week:     prefs.Week,
			Question: question,
			Gender:   prefs.Gender,
			Language: prefs.Language,
		},
	}
	s.mu.Unlock()

	s.view.AppendUserMessage(question)
	return ex, true
}

// Complete performs the request for ex and renders the answer, or shows the
// error popup on any failure. It blocks until the backend responds.
func (s *Session) Complete(ctx context.Context, ex *Exchange) {
	log := s.log.With("exchange_id", ex.ID, "seq", ex.Seq)
	log.DebugContext(ctx, "Sending question", "level", ex.Request.Level, "week", ex.Request.Week)

	answer, err := s.asker.Ask(ctx, ex.Request)

	if !s.claim(ex.Seq) {
		log.DebugContext(ctx, "Discarding reply overtaken by a newer exchange", "error", err)
		return
	}

	if err != nil {
		log.ErrorContext(ctx, "Error sending message", "error", err)
		s.view.ShowError(MsgBackendUnavailable)
		return
	}

	s.view.AppendBotMessage(answer)
}

// Send is Begin followed by Complete on the calling goroutine.
func (s *Session) Send(ctx context.Context, input string) bool {
	ex, ok := s.Begin(input)
	if !ok {
		return false
	}
	s.Complete(ctx, ex)
	return true
}

func (s *Session) claim(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.rendered {
		return false
	}
	s.rendered = seq
	return true
}
