package domain

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// Weights are the dimension weights used to compute an overall score.
type Weights struct {
	Project    float64 `json:"projectWeight" mapstructure:"project-weight"`
	Experience float64 `json:"experienceWeight" mapstructure:"experience-weight"`
	Skills     float64 `json:"skillsWeight" mapstructure:"skills-weight"`
}

// Overall returns round(project·wp + experience·we + skills·ws).
func (w Weights) Overall(s Scores) int {
	sum := float64(s.Project)*w.Project + float64(s.Experience)*w.Experience + float64(s.Skills)*w.Skills
	return ClampScore(int(math.Round(sum)))
}

func (w Weights) validate() error {
	for _, v := range []float64{w.Project, w.Experience, w.Skills} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: weight %v is outside [0,1]", ErrInvalidWeights, v)
		}
	}
	if sum := w.Project + w.Experience + w.Skills; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, sum)
	}
	return nil
}

type EnrichmentCriteria struct {
	Enabled        bool `json:"enabled" mapstructure:"enabled"`
	MinCodeQuality int  `json:"minCodeQuality" mapstructure:"min-code-quality"`
	RequireActive  bool `json:"requireActive" mapstructure:"require-active"`
}

// EvaluationCriteria is the per-organization scoring configuration.
type EvaluationCriteria struct {
	Weights             `mapstructure:",squash"`
	MinimumProjectScore int                `json:"minimumProjectScore" mapstructure:"minimum-project-score"`
	EnableAIAnalysis    bool               `json:"enableAIAnalysis" mapstructure:"enable-ai-analysis"`
	Enrichment          EnrichmentCriteria `json:"enrichment" mapstructure:"enrichment"`
}

// DefaultCriteria is used for organizations without stored settings.
func DefaultCriteria() EvaluationCriteria {
	return EvaluationCriteria{
		Weights:             Weights{Project: 0.4, Experience: 0.3, Skills: 0.3},
		MinimumProjectScore: 60,
		Enrichment:          EnrichmentCriteria{MinCodeQuality: 50},
	}
}

// Validate rejects criteria whose weights do not sum to 1 or whose
// thresholds fall outside 0..100.
func (c EvaluationCriteria) Validate() error {
	if err := c.Weights.validate(); err != nil {
		return err
	}
	if c.MinimumProjectScore < 0 || c.MinimumProjectScore > 100 {
		return fmt.Errorf("%w: minimum project score %d", ErrInvalidThreshold, c.MinimumProjectScore)
	}
	if c.Enrichment.MinCodeQuality < 0 || c.Enrichment.MinCodeQuality > 100 {
		return fmt.Errorf("%w: minimum code quality %d", ErrInvalidThreshold, c.Enrichment.MinCodeQuality)
	}
	return nil
}
