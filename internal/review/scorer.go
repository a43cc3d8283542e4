package review

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/ai"
	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

//go:embed score_prompt.md
var scoreTemplate string

var requiredScoreKeys = []string{"projectScore", "experienceScore", "skillsScore"}

// Scorer asks the model for a rubric-style numeric score.
type Scorer struct {
	generator ai.Generator
	logger    *zap.Logger
	opts      ai.GenerateOptions
	maxLogLen int
}

func NewScorer(generator ai.Generator, logger *zap.Logger, opts Options) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	return &Scorer{generator: generator, logger: logger, opts: opts.generate(), maxLogLen: maxLogLen}
}

// Score returns nil when no generator is configured, the call fails or the
// reply lacks any of the dimension scores.
func (s *Scorer) Score(ctx context.Context, job *domain.JobRequirement, app *domain.Application) *domain.Scores {
	if s == nil || s.generator == nil {
		return nil
	}

	prompt, err := buildScorePrompt(job, app)
	if err != nil {
		s.logger.Warn("build score prompt", zap.Error(err))
		return nil
	}

	s.logger.Debug("score request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.Generate(ctx, prompt, s.opts)
	if err != nil {
		s.logger.Warn("score request failed", zap.Error(err))
		return nil
	}

	scores, err := parseScores(raw)
	if err != nil {
		s.logger.Warn("score response unusable",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
		)
		return nil
	}
	return scores
}

func buildScorePrompt(job *domain.JobRequirement, app *domain.Application) (string, error) {
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}
	appJSON, err := json.MarshalIndent(app, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal application payload: %w", err)
	}

	template := scoreTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job:\n{{JOB_JSON}}\n\nApplication:\n{{APPLICATION_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_JSON}}", string(jobJSON))
	prompt = strings.ReplaceAll(prompt, "{{APPLICATION_JSON}}", string(appJSON))
	return prompt, nil
}

func parseScores(raw string) (*domain.Scores, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return nil, err
	}

	for _, key := range requiredScoreKeys {
		v, ok := data[key]
		if !ok {
			return nil, fmt.Errorf("missing %s", key)
		}
		f := ai.CoerceFloat(v)
		if math.IsNaN(f) {
			return nil, fmt.Errorf("%s is not a number", key)
		}
		data[key] = math.Round(f)
	}
	if f := ai.CoerceFloat(data["overallScore"]); !math.IsNaN(f) {
		data["overallScore"] = math.Round(f)
	} else {
		delete(data, "overallScore")
	}

	var scores domain.Scores
	if err := mapstructure.WeakDecode(data, &scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}

	scores.Project = domain.ClampScore(scores.Project)
	scores.Experience = domain.ClampScore(scores.Experience)
	scores.Skills = domain.ClampScore(scores.Skills)
	scores.Overall = domain.ClampScore(scores.Overall)
	return &scores, nil
}
