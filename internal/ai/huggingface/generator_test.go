package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/utils"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		status  int
		expect  string
		wantErr bool
	}{
		{name: "array", body: `[{"generated_text": "{\"ranking\": \"strong\"}"}]`, status: http.StatusOK, expect: `{"ranking": "strong"}`},
		{name: "object", body: `{"generated_text": "done"}`, status: http.StatusOK, expect: "done"},
		{name: "echoed prompt", body: `[{"generated_text": "Review the candidate. Looks strong."}]`, status: http.StatusOK, expect: "Looks strong."},
		{name: "model error", body: `{"error": "Model is loading"}`, status: http.StatusOK, wantErr: true},
		{name: "empty list", body: `[]`, status: http.StatusOK, wantErr: true},
		{name: "bad status", body: `{"error": "unavailable"}`, status: http.StatusServiceUnavailable, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/org/model" || r.Header.Get("Authorization") != "Bearer hf" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				var req request
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Parameters.MaxNewTokens != 128 {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g, err := NewGenerator(nil, Options{Token: "hf", APIURL: srv.URL, Model: "org/model"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := g.Generate(context.Background(), "Review the candidate.", ai.GenerateOptions{MaxTokens: 128, Temperature: 0.3})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer srv.Close()

	g, err := NewGenerator(nil, Options{Token: "hf", APIURL: srv.URL, Model: "org/model"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.Generate(context.Background(), "prompt", ai.GenerateOptions{})
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError || statusErr.Body != `{"error": "boom"}` {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestNewGeneratorRequiresToken(t *testing.T) {
	if _, err := NewGenerator(nil, Options{}); err == nil {
		t.Fatal("expected error without token")
	}
}

func TestParseGenerationEmpty(t *testing.T) {
	if _, err := parseGeneration([]byte(`[]`)); !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}
