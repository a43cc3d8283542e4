package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9]+`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// stopWords are dropped from keyword sets.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"was": true, "were": true, "been": true, "has": true, "its": true,
	"but": true, "not": true, "all": true, "can": true, "into": true,
	"who": true, "what": true, "which": true, "also": true, "more": true,
}

// Normalize lowercases s and collapses every run of non-alphanumerics to one space.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Compact lowercases s and strips everything but letters and digits,
// so "Node.js", "node js" and "NodeJS" all become "nodejs".
func Compact(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// symbolNames spells out technology names whose identity lives in punctuation.
var symbolNames = strings.NewReplacer(
	"c++", "cpp",
	"c#", "csharp",
	"f#", "fsharp",
	".net", "dotnet",
	"golang", "go",
)

// shortName is the longest canonical name matched as a whole token only.
const shortName = 2

func canonical(s string) string {
	return symbolNames.Replace(strings.ToLower(s))
}

// MatchesAny reports whether needle is a case and punctuation insensitive
// substring of any of the haystack values. Names of up to two characters,
// like "Go" or "R", must match a whole word.
func MatchesAny(needle string, haystack []string) bool {
	n := Compact(canonical(needle))
	if n == "" {
		return false
	}
	short := len([]rune(n)) <= shortName
	for _, h := range haystack {
		c := canonical(h)
		if !short {
			if strings.Contains(Compact(c), n) {
				return true
			}
			continue
		}
		for _, tok := range strings.Fields(Normalize(c)) {
			if tok == n {
				return true
			}
		}
	}
	return false
}

// Keywords returns the lowercase tokens of text longer than two characters,
// excluding stop words.
func Keywords(text string) map[string]bool {
	kw := make(map[string]bool)
	for _, t := range strings.Fields(Normalize(text)) {
		if len([]rune(t)) > 2 && !stopWords[t] {
			kw[t] = true
		}
	}
	return kw
}

// Overlap counts keys present in both sets.
func Overlap(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}

// ContainsPhrase reports whether the normalized phrase occurs in the
// normalized text as whole words.
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}

// Sentences splits text on sentence terminators and line breaks.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "-*•"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
