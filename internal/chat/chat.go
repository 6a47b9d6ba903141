// Package chat implements the chat session controller: one-time preference
// capture, the message exchange with the tutor backend, and the contact form.
// Rendering is delegated to a View so the same controller drives the terminal
// client, the Telegram bot, and tests.
package chat

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/edgard/arabictutor/internal/api"
)

// User-facing texts.
const (
	MsgIncompletePreferences = "Please fill out all preferences."
	MsgBackendUnavailable    = "Sorry, I couldn't connect to the backend. Please try again later."
	MsgIncompleteContact     = "Please fill out all fields in the contact form."
	MsgContactThanks         = "Thank you for contacting us! We will get back to you soon."
)

var (
	// ErrIncompletePreferences is returned when a preference field is missing.
	ErrIncompletePreferences = errors.New("incomplete preferences")
	// ErrIncompleteContact is returned when a contact form field is missing.
	ErrIncompleteContact = errors.New("incomplete contact form")
	// ErrNoPreferences is logged when a message is sent before preferences exist.
	ErrNoPreferences = errors.New("preferences not captured")
)

var validate = validator.New()

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the message log.
type Message struct {
	Sender Sender
	Text   string
}

// RenderSink receives conversation output.
type RenderSink interface {
	AppendUserMessage(text string)
	AppendBotMessage(text string)
	ShowError(message string)
}

// View is everything a session needs from its presentation layer.
type View interface {
	RenderSink
	// ShowChat hides the preference popup and reveals the chat surface.
	ShowChat()
	// Alert shows a blocking notice.
	Alert(message string)
}

// Asker sends one question to the tutor backend and returns its answer.
type Asker interface {
	Ask(ctx context.Context, req api.AskRequest) (string, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, req api.AskRequest) (string, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context, req api.AskRequest) (string, error) {
	return f(ctx, req)
}
