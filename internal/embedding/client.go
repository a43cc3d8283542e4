// Package embedding turns job and project text into vectors and compares them.
package embedding

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

	"github.com/spigell/hire-scorer/internal/logger"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	defaultAPIURL  = "https://api-inference.huggingface.co/pipeline/feature-extraction"
	defaultModel   = "sentence-transformers/all-MiniLM-L6-v2"
	defaultTimeout = 15 * time.Second
	provider       = "huggingface"
)

type Options struct {
	Token        string
	APIURL       string
	Model        string
	Timeout      time.Duration
	WaitForModel bool
}

// Client calls a feature-extraction endpoint.
type Client struct {
	token        string
	logger       *zap.Logger
	HTTPClient   *http.Client
	APIURL       string
	Model        string
	WaitForModel bool
}

func New(log *zap.Logger, opts Options) *Client {
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

	return &Client{
		token:        strings.TrimSpace(opts.Token),
		logger:       logger.WithCommonFields(log, provider, model),
		HTTPClient:   &http.Client{Timeout: timeout},
		APIURL:       api,
		Model:        model,
		WaitForModel: opts.WaitForModel,
	}
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c != nil && c.token != ""
}

type request struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Embed returns the vector for text, or nil when no credential is set or
// the call fails.
func (c *Client) Embed(ctx context.Context, text string) []float64 {
	if !c.Available() || strings.TrimSpace(text) == "" {
		return nil
	}

	vec, err := c.embed(ctx, text)
	if err != nil {
		c.logger.Warn("embedding request failed", zap.Error(err))
		return nil
	}
	return vec
}

func (c *Client) embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(request{Inputs: text, Options: requestOptions{WaitForModel: c.WaitForModel}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/"+c.Model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("make request", zap.String("url", req.URL.String()), zap.Int("input_length", len(text)))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &utils.StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: req.URL.Path}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}

	vec := normalize(raw)
	if len(vec) == 0 {
		return nil, errors.New("unexpected embedding shape")
	}
	return vec, nil
}

// normalize accepts a flat vector, a singleton-nested vector, or a
// token-level matrix which is mean pooled.
func normalize(raw any) []float64 {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil
	}

	if vec, ok := numbers(items); ok {
		return vec
	}

	if len(items) == 1 {
		return normalize(items[0])
	}

	rows := make([][]float64, 0, len(items))
	for _, item := range items {
		row, ok := item.([]any)
		if !ok {
			return nil
		}
		vec, ok := numbers(row)
		if !ok {
			return nil
		}
		rows = append(rows, vec)
	}
	return meanPool(rows)
}

func numbers(items []any) ([]float64, bool) {
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func meanPool(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	dim := len(rows[0])
	out := make([]float64, dim)
	for _, row := range rows {
		if len(row) != dim {
			return nil
		}
		for i, v := range row {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(rows))
	}
	return out
}
