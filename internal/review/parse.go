package review

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	maxListItems     = 3
	maxSummaryLength = 1000
)

// verdict is the model's reply before it is cross-checked.
type verdict struct {
	Ranking      string   `mapstructure:"ranking"`
	Confidence   float64  `mapstructure:"confidence"`
	Strengths    []string `mapstructure:"strengths"`
	Weaknesses   []string `mapstructure:"weaknesses"`
	KeyTakeaways []string `mapstructure:"keyTakeaways"`
	Summary      string   `mapstructure:"summary"`
}

type decoder func(raw string) (*verdict, error)

// firstOf returns the result of the first decoder that succeeds.
func firstOf(decoders ...decoder) decoder {
	return func(raw string) (*verdict, error) {
		errs := make([]error, 0, len(decoders))
		for _, d := range decoders {
			v, err := d(raw)
			if err == nil {
				return v, nil
			}
			errs = append(errs, err)
		}
		return nil, errors.Join(errs...)
	}
}

var parseVerdict = firstOf(decodeJSON, decodeHeuristic)

func decodeJSON(raw string) (*verdict, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return nil, err
	}

	// Models often answer "85%" or "0.85".
	if c, ok := data["confidence"]; ok {
		if f := ai.CoerceFloat(c); math.IsNaN(f) {
			delete(data, "confidence")
		} else {
			data["confidence"] = f
		}
	}

	for _, key := range []string{"strengths", "weaknesses", "keyTakeaways"} {
		if items, ok := data[key]; ok {
			data[key] = ai.CoerceStrings(items)
		}
	}
	for _, key := range []string{"ranking", "summary"} {
		if s, ok := data[key]; ok {
			data[key] = ai.CoerceString(s)
		}
	}

	var v verdict
	if err := mapstructure.WeakDecode(data, &v); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}

	if v.Ranking == "" && v.Summary == "" && len(v.Strengths) == 0 && len(v.Weaknesses) == 0 {
		return nil, errors.New("verdict has no usable fields")
	}

	v.Strengths = capList(v.Strengths)
	v.Weaknesses = capList(v.Weaknesses)
	v.KeyTakeaways = capList(v.KeyTakeaways)
	v.Summary = utils.TruncateRunes(strings.TrimSpace(v.Summary), maxSummaryLength)
	return &v, nil
}

var (
	strengthMarkers = []string{"strength", "excellent", "good", "strong"}
	weaknessMarkers = []string{"weakness", "lack", "need", "limited"}
)

// decodeHeuristic classifies free-text sentences by keyword.
func decodeHeuristic(raw string) (*verdict, error) {
	sentences := utils.Sentences(raw)
	if len(sentences) == 0 {
		return nil, errors.New("empty response")
	}

	v := &verdict{
		KeyTakeaways: []string{sentences[0]},
		Summary:      utils.TruncateRunes(strings.TrimSpace(raw), maxSummaryLength),
	}
	for _, s := range sentences {
		lower := strings.ToLower(s)
		if containsAnyOf(lower, strengthMarkers) && len(v.Strengths) < maxListItems {
			v.Strengths = append(v.Strengths, s)
		}
		if containsAnyOf(lower, weaknessMarkers) && len(v.Weaknesses) < maxListItems {
			v.Weaknesses = append(v.Weaknesses, s)
		}
	}
	return v, nil
}

func containsAnyOf(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// capList trims items and keeps at most maxListItems of them.
func capList(items []string) []string {
	out := make([]string, 0, min(len(items), maxListItems))
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxListItems {
			break
		}
	}
	return out
}
