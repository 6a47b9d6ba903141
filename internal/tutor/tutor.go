// Package tutor implements the answer engine behind the /ask endpoint.
//
// An answer is produced in three steps: the teaching material for the
// requested level and week is looked up, a language model answers the
// question restricted to that material (Gemini first, OpenAI as fallback),
// and the answer is rendered in the learner's preferred language.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/database"
)

const (
	// MsgFallbackUnavailable is returned as the answer when the primary answerer
	// fails and no fallback answerer is configured.
	MsgFallbackUnavailable = "OpenAI API key is not set. Please provide a valid API key to use this feature."

	// MsgInvalidLanguage is returned as the answer for unknown languages when
	// translation is disabled.
	MsgInvalidLanguage = "Invalid language option."
)

// ErrNoAnswerer is returned when neither answerer is configured.
var ErrNoAnswerer = errors.New("no answerer configured")

// Question is what an Answerer is asked: a question restricted to a context.
type Question struct {
	Text     string
	Context  string
	Language string
}

// Answerer produces an answer for a question using only the given context.
type Answerer interface {
	Answer(ctx context.Context, q Question) (string, error)
}

// Translator translates text between two languages.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// MaterialSource looks up teaching material.
type MaterialSource interface {
	GetMaterialContent(ctx context.Context, level, week string) (string, error)
}

// Options configures an Engine. Primary is required; the rest are optional.
type Options struct {
	Materials       MaterialSource
	Primary         Answerer
	Fallback        Answerer
	Translator      Translator
	NotFoundMessage string
}

// Engine answers /ask requests.
type Engine struct {
	materials  MaterialSource
	primary    Answerer
	fallback   Answerer
	translator Translator
	notFound   string
	log        *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(opts Options, log *slog.Logger) (*Engine, error) {
	if opts.Materials == nil {
		return nil, errors.New("material source is required")
	}
	if opts.Primary == nil && opts.Fallback == nil {
		return nil, ErrNoAnswerer
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notFound := opts.NotFoundMessage
	if notFound == "" {
		notFound = "No content found for the selected week."
	}
	return &Engine{
		materials:  opts.Materials,
		primary:    opts.Primary,
		fallback:   opts.Fallback,
		translator: opts.Translator,
		notFound:   notFound,
		log:        log.With("component", "tutor"),
	}, nil
}

// Answer produces the answer text for req. Missing material is not an error:
// the fixed not-found message is returned as the answer.
func (e *Engine) Answer(ctx context.Context, req api.AskRequest) (string, error) {
	content, err := e.materials.GetMaterialContent(ctx, req.Level, req.Week)
	if err != nil {
		if errors.Is(err, database.ErrMaterialNotFound) {
			e.log.InfoContext(ctx, "No material for request", "level", req.Level, "week", req.Week)
			return e.notFound, nil
		}
		return "", fmt.Errorf("failed to look up material: %w", err)
	}

	q := Question{Text: req.Question, Context: content, Language: req.Language}
	answer, err := e.ask(ctx, q)
	if err != nil {
		return "", err
	}
	answer = PlainText(answer)

	return e.render(ctx, answer, req.Language)
}

// Ask lets an Engine serve as a chat.Asker inside the same process.
func (e *Engine) Ask(ctx context.Context, req api.AskRequest) (string, error) {
	return e.Answer(ctx, req)
}

var _ chat.Asker = (*Engine)(nil)

func (e *Engine) ask(ctx context.Context, q Question) (string, error) {
	if e.primary != nil {
		answer, err := e.primary.Answer(ctx, q)
		if err == nil {
			return answer, nil
		}
		e.log.WarnContext(ctx, "Primary answerer failed, falling back", "error", err)
		if e.fallback == nil {
			return MsgFallbackUnavailable, nil
		}
	}

	answer, err := e.fallback.Answer(ctx, q)
	if err != nil {
		e.log.ErrorContext(ctx, "Fallback answerer failed", "error", err)
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	return answer, nil
}

func (e *Engine) render(ctx context.Context, answer, language string) (string, error) {
	switch chat.Language(language) {
	case chat.LanguageArabic:
		return answer, nil
	case chat.LanguageHebrew:
		return TransliterateHebrew(answer), nil
	case chat.LanguageEnglish:
		return TransliterateEnglish(answer), nil
	}

	if e.translator == nil {
		return MsgInvalidLanguage, nil
	}
	translated, err := e.translator.Translate(ctx, answer, "ar", "en")
	if err != nil {
		e.log.WarnContext(ctx, "Translation failed, returning original answer", "error", err)
		return answer, nil
	}
	return strings.TrimSpace(translated), nil
}
