// Package review asks a generative model for a qualitative verdict on an
// application and cross-checks it against locally computed scores.
package review

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

//go:embed review_prompt.md
var reviewTemplate string

const (
	defaultMaxLogLength = 200
	defaultConfidence   = 60
	degradedConfidence  = 50
	defaultMaxTokens    = 1024
	defaultTemperature  = 0.2
	maxHighlights       = 3
)

type Options struct {
	Temperature  float32
	MaxTokens    int
	MaxLogLength int
}

func (o Options) generate() ai.GenerateOptions {
	opts := ai.GenerateOptions{Temperature: o.Temperature, MaxTokens: o.MaxTokens}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	return opts
}

type Reviewer struct {
	generator ai.Generator
	logger    *zap.Logger
	opts      ai.GenerateOptions
	maxLogLen int
}

// NewReviewer returns a reviewer. A nil generator makes Review return nil.
func NewReviewer(generator ai.Generator, logger *zap.Logger, opts Options) *Reviewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	return &Reviewer{
		generator: generator,
		logger:    logger,
		opts:      opts.generate(),
		maxLogLen: maxLogLen,
	}
}

// Review returns nil only when no generator is configured. A failed remote
// call yields a degraded verdict.
func (r *Reviewer) Review(
	ctx context.Context,
	job *domain.JobRequirement,
	app *domain.Application,
	signals []domain.ProjectSignal,
	semantic domain.SemanticResult,
	technical domain.TechnicalResult,
) *domain.AdvancedEvaluation {
	if r == nil || r.generator == nil {
		return nil
	}

	innovation := InnovationScore(signals)
	prompt := buildReviewPrompt(job, app, signals, semantic, technical, innovation)

	r.logger.Debug("review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.Generate(ctx, prompt, r.opts)
	if err != nil {
		r.logger.Warn("review request failed, using degraded verdict", zap.Error(err))
		return degraded(signals, semantic, technical, innovation)
	}

	r.logger.Debug("review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	v, err := parseVerdict(raw)
	if err != nil {
		r.logger.Warn("review response unusable, using degraded verdict", zap.Error(err))
		return degraded(signals, semantic, technical, innovation)
	}

	ranking := DetermineRanking(v.Ranking, raw, semantic.Score, technical.Score, innovation)
	return &domain.AdvancedEvaluation{
		SemanticScore:         semantic.Score,
		TechnicalDepthScore:   technical.Score,
		InnovationScore:       innovation,
		AIRanking:             ranking,
		AIConfidence:          confidence(v.Confidence),
		AIAnalysis:            v.Summary,
		OverallRecommendation: RecommendationFor(ranking, semantic.Score),
		Strengths:             v.Strengths,
		Weaknesses:            v.Weaknesses,
		KeyTakeaways:          v.KeyTakeaways,
		ProjectInsights:       insights(signals, semantic, technical),
	}
}

func buildReviewPrompt(job *domain.JobRequirement, app *domain.Application, signals []domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult, innovation int) string {
	template := reviewTemplate
	if strings.TrimSpace(template) == "" {
		template = "Role:\n{{JOB}}\n\nCandidate:\n{{CANDIDATE}}\n\nProjects:\n{{PROJECTS}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB}}", jobBlock(job))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE}}", candidateBlock(app, semantic, technical, innovation))
	prompt = strings.ReplaceAll(prompt, "{{PROJECTS}}", projectBlocks(signals, semantic, technical))
	return prompt
}

// confidence accepts 0..1 fractions and 0..100 percentages.
func confidence(c float64) int {
	switch {
	case c <= 0 || math.IsNaN(c):
		return defaultConfidence
	case c <= 1:
		c *= 100
	}
	return domain.ClampScore(int(math.Round(c)))
}

func degraded(signals []domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult, innovation int) *domain.AdvancedEvaluation {
	ranking := DetermineRanking("", "", semantic.Score, technical.Score, innovation)
	return &domain.AdvancedEvaluation{
		SemanticScore:         semantic.Score,
		TechnicalDepthScore:   technical.Score,
		InnovationScore:       innovation,
		AIRanking:             ranking,
		AIConfidence:          degradedConfidence,
		AIAnalysis:            "Qualitative analysis could not be completed; the verdict is derived from computed scores only.",
		OverallRecommendation: RecommendationFor(ranking, semantic.Score),
		Strengths:             []string{"Application contains the information required for automated scoring."},
		Weaknesses:            []string{"Qualitative review unavailable; rely on the rubric scores."},
		ProjectInsights:       insights(signals, semantic, technical),
		Degraded:              true,
	}
}

func insights(signals []domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult) []domain.ProjectInsight {
	out := make([]domain.ProjectInsight, 0, len(signals))
	for i, s := range signals {
		insight := domain.ProjectInsight{Title: s.Project().Title}
		if i < len(semantic.Projects) {
			insight.SemanticScore = semantic.Projects[i].Score
		}
		if i < len(technical.Projects) {
			insight.TechnicalScore = technical.Projects[i].Score
		}
		insight.Highlights = highlights(s)
		out = append(out, insight)
	}
	return out
}

func highlights(signal domain.ProjectSignal) []string {
	var out []string
	switch s := signal.(type) {
	case domain.Enriched:
		if s.Repo.IsActive {
			out = append(out, "Actively maintained repository")
		}
		if s.Repo.HasTests {
			out = append(out, "Automated tests")
		}
		if s.Repo.HasCICD {
			out = append(out, "CI/CD pipeline")
		}
		if s.Repo.CodeQuality >= 70 {
			out = append(out, "High repository health")
		}
	case domain.Declared:
		if len(s.Achievements) > 0 {
			out = append(out, s.Achievements[0])
		}
		if s.Complexity != "" {
			out = append(out, "Declared complexity: "+string(s.Complexity))
		}
	}
	if len(out) > maxHighlights {
		out = out[:maxHighlights]
	}
	return out
}
