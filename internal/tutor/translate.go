package tutor

import (
	"context"
	"fmt"

	googletranslatefree "github.com/bas24/googletranslatefree"
)

// GoogleTranslator translates through the free Google Translate endpoint.
type GoogleTranslator struct {
	translate func(text, from, to string) (string, error)
}

// NewGoogleTranslator creates a Translator backed by googletranslatefree.
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{translate: googletranslatefree.Translate}
}

// Translate translates text. The call is not cancellable once started; ctx
// is only checked before it is issued.
func (g *GoogleTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := g.translate(text, from, to)
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", from, to, err)
	}
	return out, nil
}
