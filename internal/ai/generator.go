// Package ai defines the contract for remote generative models and the
// helpers shared by callers that parse their replies.
package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a model answers with no text.
var ErrEmptyResponse = errors.New("model returned empty response")

// GenerateOptions bound a single generation call.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	Model() string
}
