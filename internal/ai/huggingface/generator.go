// Package huggingface implements ai.Generator on top of the Inference API
// text-generation task.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/logger"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	defaultAPIURL  = "https://api-inference.huggingface.co/models"
	defaultModel   = "mistralai/Mistral-7B-Instruct-v0.3"
	defaultTimeout = 30 * time.Second
	provider       = "huggingface"
	errPreviewLen  = 200
)

type Options struct {
	Token   string
	APIURL  string
	Model   string
	Timeout time.Duration
}

type Generator struct {
	token      string
	modelName  string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

var _ ai.Generator = (*Generator)(nil)

func NewGenerator(log *zap.Logger, opts Options) (*Generator, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, errors.New("huggingface token is required")
	}

	api := strings.TrimRight(strings.TrimSpace(opts.APIURL), "/")
	if api == "" {
		api = defaultAPIURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{
		token:      token,
		modelName:  model,
		logger:     logger.WithCommonFields(log, provider, model),
		HTTPClient: &http.Client{Timeout: timeout},
		APIURL:     api,
	}, nil
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float32 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}

func (g *Generator) Generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	body, err := json.Marshal(request{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens: opts.MaxTokens,
			Temperature:  opts.Temperature,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.APIURL+"/"+g.modelName, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	g.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &utils.StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        req.URL.Path,
			Body:       utils.TruncateForLog(string(data), errPreviewLen),
		}
	}

	text, err := parseGeneration(data)
	if err != nil {
		return "", err
	}

	// Some deployments ignore return_full_text and echo the prompt.
	text = strings.TrimSpace(strings.TrimPrefix(text, prompt))
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// parseGeneration accepts both [{"generated_text": ...}] and {"generated_text": ...}.
func parseGeneration(data []byte) (string, error) {
	data = bytes.TrimSpace(data)

	var list []generation
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return "", ai.ErrEmptyResponse
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(data, &single); err != nil {
		return "", fmt.Errorf("decode generation: %w", err)
	}
	if single.Error != "" {
		return "", fmt.Errorf("huggingface error: %s", single.Error)
	}
	return single.GeneratedText, nil
}
