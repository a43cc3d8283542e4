package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/review"
	"github.com/spigell/hire-scorer/internal/rubric"
)

const (
	StageRubric     = "rubric"
	StageEnrichment = "enrichment"
	StageSemantic   = "semantic"
	StageBlend      = "ai_blend"
	StageReview     = "ai_review"
)

// errSkipped marks a stage that did not run for this application.
var errSkipped = errors.New("skipped")

func skip(reason string) error {
	return fmt.Errorf("%w: %s", errSkipped, reason)
}

type rubricStage struct{ toggle }

func (s *rubricStage) Name() string { return StageRubric }

// Disable is a no-op: every evaluation starts from the rubric.
func (s *rubricStage) Disable(string) {}

func (s *rubricStage) Apply(_ context.Context, _ Deps, run *Run) error {
	run.Signals = domain.DeclaredSignals(run.Application.Projects, "enrichment not requested")
	run.Result = rubric.Score(run.Job, run.Application, run.Signals, run.Criteria)
	return nil
}

type enrichmentStage struct{ toggle }

func (s *enrichmentStage) Name() string { return StageEnrichment }

func (s *enrichmentStage) Apply(ctx context.Context, deps Deps, run *Run) error {
	if deps.Enricher == nil {
		return skip("no repository client configured")
	}
	if !run.Criteria.Enrichment.Enabled {
		return skip("enrichment disabled for organization")
	}

	signals := deps.Enricher.EnrichAll(ctx, run.Application.Projects)
	if len(signals) != len(run.Application.Projects) {
		return fmt.Errorf("enricher returned %d signals for %d projects", len(signals), len(run.Application.Projects))
	}

	activity := make([]domain.ProjectActivity, 0, len(signals))
	for _, sig := range signals {
		activity = append(activity, domain.Activity(sig, run.Criteria.Enrichment.MinCodeQuality))
	}

	run.Signals = signals
	run.Result.Projects = activity
	return nil
}

func (s *enrichmentStage) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason}
}

type semanticStage struct{ toggle }

func (s *semanticStage) Name() string { return StageSemantic }

func (s *semanticStage) Apply(ctx context.Context, deps Deps, run *Run) error {
	if deps.Semantic == nil {
		return skip("no embedding client configured")
	}

	semantic := deps.Semantic.Analyze(ctx, run.Job, run.Signals)
	run.Semantic = semantic
	run.Result.Semantic = &semantic
	return nil
}

func (s *semanticStage) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason}
}

type blendStage struct {
	toggle
	alpha float64
}

func (s *blendStage) Name() string { return StageBlend }

func (s *blendStage) Apply(ctx context.Context, deps Deps, run *Run) error {
	if deps.Scorer == nil {
		return skip("no generative model configured")
	}
	if !run.Criteria.EnableAIAnalysis {
		return skip("ai analysis disabled for organization")
	}

	llm := deps.Scorer.Score(ctx, run.Job, run.Application)
	if llm == nil {
		return errors.New("model score unavailable")
	}

	r := run.Result
	rule := r.Scores
	r.RuleScores = &rule
	r.Scores = domain.Blend(rule, *llm, s.alpha, run.Criteria.Weights)

	// Upgrade only, and never past the project floor.
	if !r.ProjectFloorApplied {
		if candidate := domain.StatusForOverall(r.Overall); candidate.Rank() > r.ShortlistStatus.Rank() {
			deps.Logger.Info("status upgraded by blended score",
				zap.String("from", string(r.ShortlistStatus)),
				zap.String("to", string(candidate)),
				zap.Int("overall", r.Overall),
			)
			r.ShortlistStatus = candidate
		}
	}
	rubric.Describe(run.Job, r)
	return nil
}

func (s *blendStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: s.IsEnabled(),
		Reason:  s.reason,
		Details: map[string]string{"alpha": strconv.FormatFloat(s.alpha, 'f', 2, 64)},
	}
}

type reviewStage struct{ toggle }

func (s *reviewStage) Name() string { return StageReview }

func (s *reviewStage) Apply(ctx context.Context, deps Deps, run *Run) error {
	if deps.Reviewer == nil {
		return skip("no generative model configured")
	}
	if !run.Criteria.EnableAIAnalysis {
		return skip("ai analysis disabled for organization")
	}

	technical := review.TechnicalScore(run.Signals)
	verdict := deps.Reviewer.Review(ctx, run.Job, run.Application, run.Signals, run.Semantic, technical)
	if verdict == nil {
		return skip("reviewer returned no verdict")
	}

	run.Technical = technical
	r := run.Result
	r.AdvancedEvaluation = verdict

	if verdict.AIRanking == domain.RankingTopTier && verdict.OverallRecommendation == domain.RecommendStrongly &&
		r.ShortlistStatus != domain.StatusShortlisted {
		deps.Logger.Info("status overridden by qualitative review",
			zap.String("from", string(r.ShortlistStatus)),
			zap.String("ranking", string(verdict.AIRanking)),
		)
		r.ShortlistStatus = domain.StatusShortlisted
		rubric.Describe(run.Job, r)
	}
	return nil
}

func (s *reviewStage) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason}
}
