package ai

import (
	"math"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		expect string
	}{
		{name: "plain", raw: `{"a":1}`, expect: `{"a":1}`},
		{name: "fenced", raw: "```json\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "prose around", raw: "Here you go: {\"a\":{\"b\":2}} Hope it helps.", expect: `{"a":{"b":2}}`},
		{name: "no object", raw: "no json here", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractJSON(tt.raw); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	data, err := DecodeObject("```\n{\"ranking\": \"strong\", \"confidence\": \"85%\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CoerceString(data["ranking"]) != "strong" {
		t.Fatalf("unexpected ranking %v", data["ranking"])
	}
	if CoerceFloat(data["confidence"]) != 85 {
		t.Fatalf("expected percent string to coerce to 85, got %v", CoerceFloat(data["confidence"]))
	}

	if _, err := DecodeObject("{not json}"); err == nil {
		t.Fatalf("expected error for malformed object")
	}
}

func TestCoerce(t *testing.T) {
	if !math.IsNaN(CoerceFloat("abc")) || !math.IsNaN(CoerceFloat(nil)) {
		t.Fatalf("expected NaN for non numeric values")
	}
	if got := CoerceStrings([]any{" one ", "", 2.0}); len(got) != 2 || got[0] != "one" || got[1] != "2" {
		t.Fatalf("unexpected list coercion: %v", got)
	}
	if got := CoerceStrings("single"); len(got) != 1 {
		t.Fatalf("expected single string to become a list, got %v", got)
	}
}
