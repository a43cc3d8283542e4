package utils

import "testing"

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		needle   string
		haystack []string
		expect   bool
	}{
		{name: "punctuation insensitive", needle: "Node.js", haystack: []string{"nodejs", "react"}, expect: true},
		{name: "case insensitive", needle: "postgresql", haystack: []string{"PostgreSQL 15"}, expect: true},
		{name: "substring", needle: "react", haystack: []string{"React Native"}, expect: true},
		{name: "missing", needle: "rust", haystack: []string{"go", "python"}, expect: false},
		{name: "empty needle", needle: " . ", haystack: []string{"anything"}, expect: false},
		{name: "cpp is not react", needle: "C++", haystack: []string{"React"}, expect: false},
		{name: "csharp is not javascript", needle: "C#", haystack: []string{"JavaScript"}, expect: false},
		{name: "cpp spelled out", needle: "C++", haystack: []string{"cpp"}, expect: true},
		{name: "csharp with dotnet", needle: "C#", haystack: []string{"C# / .NET"}, expect: true},
		{name: "dotnet in framework name", needle: ".NET", haystack: []string{"ASP.NET Core"}, expect: true},
		{name: "short name as word", needle: "Go", haystack: []string{"Go 1.22"}, expect: true},
		{name: "short name inside word", needle: "go", haystack: []string{"MongoDB", "Django"}, expect: false},
		{name: "golang alias", needle: "Go", haystack: []string{"golang"}, expect: true},
		{name: "single letter language", needle: "R", haystack: []string{"React", "Redis"}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MatchesAny(tt.needle, tt.haystack); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestKeywordsDropsShortAndStopWords(t *testing.T) {
	kw := Keywords("Build the API for a real-time dashboard, and ship it!")

	for _, want := range []string{"build", "api", "real", "time", "dashboard", "ship"} {
		if !kw[want] {
			t.Fatalf("expected keyword %q in %v", want, kw)
		}
	}
	for _, unwanted := range []string{"the", "for", "and", "it", "a"} {
		if kw[unwanted] {
			t.Fatalf("did not expect keyword %q", unwanted)
		}
	}
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Uses a REST API and real-time sockets")
	if !ContainsPhrase(text, "rest api") {
		t.Fatalf("expected phrase match in %q", text)
	}
	if !ContainsPhrase(text, Normalize("real-time")) {
		t.Fatalf("expected hyphenated phrase match in %q", text)
	}
	if ContainsPhrase(text, "ai") {
		t.Fatalf("did not expect partial word match")
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("Strong backend work. Lacks tests!\n- Needs CI?")
	want := []string{"Strong backend work", "Lacks tests", "Needs CI"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
