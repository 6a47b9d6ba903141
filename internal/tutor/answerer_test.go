package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/edgard/arabictutor/internal/config"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func TestGeminiAnswererRetries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"ok first try", nil, 1, false},
		{"retry on 503", []error{&genai.APIError{Code: 503}}, 2, false},
		{"retry on 500 value", []error{genai.APIError{Code: 500}}, 2, false},
		{"no retry on 400", []error{&genai.APIError{Code: 400}}, 1, true},
		{"no retry on plain error", []error{errors.New("dial")}, 1, true},
		{"gives up", []error{&genai.APIError{Code: 503}, &genai.APIError{Code: 503}, &genai.APIError{Code: 503}}, 3, true},
	}
	for _, tt := range tests {
		calls := 0
		gen := func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			calls++
			if model != "m" {
				t.Errorf("model = %q", model)
			}
			if !strings.Contains(contents[0].Parts[0].Text, "Lesson material:\nctx") {
				t.Errorf("prompt = %q", contents[0].Parts[0].Text)
			}
			if calls <= len(tt.errs) {
				return nil, tt.errs[calls-1]
			}
			return textResponse(" answer "), nil
		}
		g := newGeminiAnswerer(gen, config.GeminiConfig{Model: "m", MaxRetries: 2}, nil)

		got, err := g.Answer(context.Background(), Question{Text: "q", Context: "ctx"})
		if (err != nil) != tt.wantErr {
			t.Fatalf("%s: Answer() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if calls != tt.wantCalls {
			t.Errorf("%s: calls = %d, want %d", tt.name, calls, tt.wantCalls)
		}
		if !tt.wantErr && got != "answer" {
			t.Errorf("%s: Answer() = %q", tt.name, got)
		}
	}
}

func TestGeminiAnswererEmptyResponse(t *testing.T) {
	t.Parallel()
	gen := func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	}
	g := newGeminiAnswerer(gen, config.GeminiConfig{Model: "m"}, nil)
	if _, err := g.Answer(context.Background(), Question{}); err == nil {
		t.Fatal("Answer() error = nil, want error for empty response")
	}
}

type fakeCompleter struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestOpenAIAnswerer(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: " مرحبا \n"}}},
	}}
	o := &OpenAIAnswerer{client: fc, model: "gpt", maxTokens: 150}

	got, err := o.Answer(context.Background(), Question{Text: "hi?", Context: "lesson", Language: "arabic"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if got != "مرحبا" {
		t.Errorf("Answer() = %q", got)
	}
	if fc.req.Model != "gpt" || fc.req.MaxTokens != 150 {
		t.Errorf("request = %+v", fc.req)
	}
	prompt := fc.req.Messages[0].Content
	for _, want := range []string{"You are an Arabic teacher", "lesson", "hi?", "Answer in arabic."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}

	fc.resp = openai.ChatCompletionResponse{}
	if _, err := o.Answer(context.Background(), Question{}); err == nil {
		t.Error("Answer() with no choices error = nil")
	}
}

func TestNewAnswerersRequireKeys(t *testing.T) {
	t.Parallel()
	if _, err := NewOpenAIAnswerer(config.OpenAIConfig{}); err == nil {
		t.Error("NewOpenAIAnswerer() without key error = nil")
	}
	if _, err := NewGeminiAnswerer(context.Background(), config.GeminiConfig{}, nil); err == nil {
		t.Error("NewGeminiAnswerer() without key error = nil")
	}
}

func TestGoogleTranslator(t *testing.T) {
	t.Parallel()
	g := &GoogleTranslator{translate: func(text, from, to string) (string, error) {
		return from + ">" + to + ":" + text, nil
	}}
	got, err := g.Translate(context.Background(), "x", "ar", "en")
	if err != nil || got != "ar>en:x" {
		t.Errorf("Translate() = %q, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Translate(ctx, "x", "ar", "en"); !errors.Is(err, context.Canceled) {
		t.Errorf("Translate(cancelled) error = %v", err)
	}
}
