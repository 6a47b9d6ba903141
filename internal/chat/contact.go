package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edgard/arabictutor/internal/logger"
)

// ContactSubmission holds the three contact form fields.
type ContactSubmission struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

// ContactSender delivers a validated contact submission.
type ContactSender interface {
	SendContact(ctx context.Context, sub ContactSubmission) error
}

// ContactView is what the contact form needs from its presentation layer.
type ContactView interface {
	Alert(message string)
	CloseContact()
}

// ContactForm validates and submits the contact popup.
type ContactForm struct {
	sender ContactSender
	view   ContactView
	log    *slog.Logger
}

// NewContactForm creates a contact form. A nil sender only logs submissions.
func NewContactForm(sender ContactSender, view ContactView, log *slog.Logger) *ContactForm {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "contact_form")
	if sender == nil {
		sender = LogOnlySender{Log: log}
	}
	return &ContactForm{sender: sender, view: view, log: log}
}

// Submit validates sub. Incomplete forms are alerted and stay open; complete
// ones are delivered, acknowledged once, and closed. A delivery failure is
// logged but does not withhold the acknowledgment.
func (f *ContactForm) Submit(ctx context.Context, sub ContactSubmission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	if err := validate.Struct(sub); err != nil {
		f.view.Alert(MsgIncompleteContact)
		return fmt.Errorf("%w: %v", ErrIncompleteContact, err)
	}

	f.log.InfoContext(ctx, "Contact form submitted", "name", sub.Name, "email", sub.Email, "message", sub.Message)

	if err := f.sender.SendContact(ctx, sub); err != nil {
		f.log.ErrorContext(ctx, "Failed to deliver contact message", "error", err)
	}

	f.view.Alert(MsgContactThanks)
	f.view.CloseContact()
	return nil
}

// LogOnlySender records submissions in the log without delivering them.
type LogOnlySender struct {
	Log *slog.Logger
}

// SendContact logs sub.
func (s LogOnlySender) SendContact(ctx context.Context, sub ContactSubmission) error {
	if s.Log != nil {
		s.Log.InfoContext(ctx, "Contact delivery not configured, submission logged only", "email", sub.Email)
	}
	return nil
}
