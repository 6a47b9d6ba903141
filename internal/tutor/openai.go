package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edgard/arabictutor/internal/config"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAnswerer answers questions with the OpenAI chat completions API.
type OpenAIAnswerer struct {
	client    chatCompleter
	model     string
	maxTokens int
}

// NewOpenAIAnswerer creates the fallback answerer.
func NewOpenAIAnswerer(cfg config.OpenAIConfig) (*OpenAIAnswerer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIAnswerer{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func openAIPrompt(q Question) string {
	return fmt.Sprintf(`You are an Arabic teacher. You must answer only based on the given context.

Context:
%s

Question:
%s

Answer in %s.`, q.Context, q.Text, q.Language)
}

// Answer asks the model the question with the lesson material as context.
func (o *OpenAIAnswerer) Answer(ctx context.Context, q Question) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: openAIPrompt(q)},
		},
		MaxTokens: o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
