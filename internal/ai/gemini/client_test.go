package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/hire-scorer/internal/ai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	calls  int
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorJoinsParts(t *testing.T) {
	models := &fakeModels{resp: textResponse(" first ", "", "second")}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}

	output, err := g.Generate(context.Background(), "  review this  ", ai.GenerateOptions{Temperature: 0.2, MaxTokens: 256})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}
	if models.model != "gemini-pro" || models.prompt != "review this" {
		t.Fatalf("unexpected call: model=%q prompt=%q", models.model, models.prompt)
	}
	if models.config == nil || models.config.Temperature == nil || *models.config.Temperature != 0.2 {
		t.Fatalf("expected temperature to be forwarded")
	}
	if models.config.MaxOutputTokens != 256 {
		t.Fatalf("expected max output tokens 256, got %d", models.config.MaxOutputTokens)
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	g := &Generator{models: &fakeModels{resp: textResponse("  ")}, modelName: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Generate(context.Background(), "prompt", ai.GenerateOptions{})
	if !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestGeneratorDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Generate(context.Background(), "prompt", ai.GenerateOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
	if models.calls != 1 {
		t.Fatalf("expected single call, got %d", models.calls)
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	models := &fakeModels{}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}
	if _, err := g.Generate(context.Background(), " ", ai.GenerateOptions{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if models.calls != 0 {
		t.Fatalf("expected no remote call")
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), nil, "", ""); err == nil {
		t.Fatal("expected error without api key")
	}
}
