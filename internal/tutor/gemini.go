package tutor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/arabictutor/internal/config"
)

const geminiSystemInstruction = `You are an Arabic teacher helping a learner with this week's lesson.
Answer only from the lesson material you are given. If the material does not
contain the answer, say so briefly. Keep answers short and write them in Arabic.`

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiAnswerer answers questions with the Gemini API.
type GeminiAnswerer struct {
	generate   generateFunc
	log        *slog.Logger
	cfg        *genai.GenerateContentConfig
	model      string
	maxRetries int
	retryDelay time.Duration
}

// NewGeminiAnswerer creates the primary answerer.
func NewGeminiAnswerer(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*GeminiAnswerer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	a := newGeminiAnswerer(gi.Models.GenerateContent, cfg, log)
	a.log.Info("Gemini answerer initialized successfully", "model", cfg.Model)
	return a, nil
}

func newGeminiAnswerer(generate generateFunc, cfg config.GeminiConfig, log *slog.Logger) *GeminiAnswerer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	temperature := cfg.Temperature
	return &GeminiAnswerer{
		generate: generate,
		log:      log.With("component", "gemini_answerer"),
		cfg: &genai.GenerateContentConfig{
			Temperature:       &temperature,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: geminiSystemInstruction}}},
		},
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Answer asks Gemini the question with the lesson material as context.
func (g *GeminiAnswerer) Answer(ctx context.Context, q Question) (string, error) {
	prompt := fmt.Sprintf("Lesson material:\n%s\n\nQuestion:\n%s", q.Context, q.Text)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := g.generateWithRetries(ctx, contents)
	if err != nil {
		return "", err
	}
	return g.extractText(ctx, resp)
}

func (g *GeminiAnswerer) generateWithRetries(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	var err error
	for i := 0; i <= g.maxRetries; i++ {
		var resp *genai.GenerateContentResponse
		resp, err = g.generate(ctx, g.model, contents, g.cfg)
		if err == nil {
			return resp, nil
		}

		g.log.WarnContext(ctx, "Gemini API call failed, checking for retry", "attempt", i+1, "max_retries", g.maxRetries, "error", err)

		code, ok := retriableCode(err)
		if !ok {
			return nil, fmt.Errorf("gemini API call failed: %w", err)
		}
		if i == g.maxRetries {
			return nil, fmt.Errorf("gemini API call failed after %d retries (APIError code %d): %w", g.maxRetries, code, err)
		}

		g.log.InfoContext(ctx, "Retrying Gemini API call due to retriable APIError", "delay", g.retryDelay, "code", code)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.retryDelay):
		}
	}
	return nil, err
}

// retriableCode reports the HTTP code of a 500 or 503 APIError.
func retriableCode(err error) (int, bool) {
	var code int
	var ptr *genai.APIError
	var val genai.APIError
	switch {
	case errors.As(err, &ptr):
		code = ptr.Code
	case errors.As(err, &val):
		code = val.Code
	default:
		return 0, false
	}
	return code, code == 500 || code == 503
}

func (g *GeminiAnswerer) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != "" && pf.BlockReason != genai.BlockedReasonUnspecified {
		reason := fmt.Sprintf("%v", pf.BlockReason)
		if pf.BlockReasonMessage != "" {
			reason = pf.BlockReasonMessage
		}
		g.log.ErrorContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("answer blocked by safety filter: %s", reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}
