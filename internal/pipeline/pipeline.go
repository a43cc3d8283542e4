// Package pipeline runs the ordered evaluation stages for one application
// and persists the outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/logger"
)

const DefaultBlendAlpha = 0.3

const inactiveRepositoriesNote = "Link at least one actively maintained public repository."

type Enricher interface {
	EnrichAll(ctx context.Context, projects []domain.DeclaredProject) []domain.ProjectSignal
}

type SemanticAnalyzer interface {
	Analyze(ctx context.Context, job *domain.JobRequirement, signals []domain.ProjectSignal) domain.SemanticResult
}

// Scorer is the lightweight numeric model score. It returns nil when unavailable.
type Scorer interface {
	Score(ctx context.Context, job *domain.JobRequirement, app *domain.Application) *domain.Scores
}

// Reviewer produces the qualitative verdict. It returns nil when unavailable.
type Reviewer interface {
	Review(ctx context.Context, job *domain.JobRequirement, app *domain.Application, signals []domain.ProjectSignal, semantic domain.SemanticResult, technical domain.TechnicalResult) *domain.AdvancedEvaluation
}

type Store interface {
	SaveEvaluation(ctx context.Context, r *domain.EvaluationResult) error
}

// Deps aggregates collaborators shared across all stages. Nil members make
// the stages that need them no-ops.
type Deps struct {
	Enricher Enricher
	Semantic SemanticAnalyzer
	Scorer   Scorer
	Reviewer Reviewer
	Store    Store
	Logger   *zap.Logger
	Now      func() time.Time
}

type Options struct {
	VisibilityDelay time.Duration
	BlendAlpha      float64
	BlendEnabled    bool
	ReviewEnabled   bool
}

// Request is one application to evaluate with its organization's criteria.
type Request struct {
	Job         *domain.JobRequirement
	Application *domain.Application
	Criteria    domain.EvaluationCriteria
}

type Pipeline struct {
	deps   Deps
	opts   Options
	stages []Stage
}

func New(deps Deps, opts Options) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if opts.VisibilityDelay <= 0 {
		opts.VisibilityDelay = domain.DefaultVisibilityDelay
	}
	if opts.BlendAlpha <= 0 || opts.BlendAlpha > 1 {
		opts.BlendAlpha = DefaultBlendAlpha
	}

	stages := []Stage{
		&rubricStage{},
		&enrichmentStage{},
		&semanticStage{},
		&blendStage{alpha: opts.BlendAlpha},
		&reviewStage{},
	}
	if !opts.BlendEnabled {
		DisableByName(stages, StageBlend, "disabled by configuration")
	}
	if !opts.ReviewEnabled {
		DisableByName(stages, StageReview, "disabled by configuration")
	}

	return &Pipeline{deps: deps, opts: opts, stages: stages}
}

func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Evaluate runs every enabled stage in order. It fails only when the request
// lacks a job or an application. When persisting fails the result is
// returned together with the error.
func (p *Pipeline) Evaluate(ctx context.Context, req Request) (*domain.EvaluationResult, error) {
	if req.Job == nil {
		return nil, domain.ErrJobNotFound
	}
	if req.Application == nil {
		return nil, domain.ErrApplicationNotFound
	}

	log := logger.ForEvaluation(p.deps.Logger, req.Job.ID, req.Application.ID)

	criteria := req.Criteria
	if err := criteria.Validate(); err != nil {
		log.Warn("invalid criteria, using defaults", zap.Error(err))
		criteria = domain.DefaultCriteria()
	}

	run := &Run{
		Job:         req.Job,
		Application: req.Application,
		Criteria:    criteria,
		Semantic:    domain.SemanticResult{Score: 50, Note: "semantic analysis unavailable"},
	}

	deps := p.deps
	for _, stage := range p.stages {
		stageLog := log.With(zap.String(logger.FieldStage, stage.Name()))
		if !stage.IsEnabled() {
			stageLog.Debug("stage disabled")
			continue
		}

		deps.Logger = stageLog
		err := stage.Apply(ctx, deps, run)
		switch {
		case errors.Is(err, errSkipped):
			stageLog.Debug("stage skipped", zap.Error(err))
		case err != nil:
			stageLog.Warn("stage failed, keeping previous result", zap.Error(err))
		default:
			stageLog.Debug("stage complete",
				zap.Int("overall", run.Result.Overall),
				zap.String("status", string(run.Result.ShortlistStatus)),
			)
		}
	}

	result := p.finalize(run)
	log.Info("evaluation complete",
		zap.Int("overall", result.Overall),
		zap.String("internal_status", string(result.InternalStatus)),
		zap.Time("visible_at", result.VisibleAt),
	)

	if p.deps.Store == nil {
		return result, nil
	}
	if err := p.deps.Store.SaveEvaluation(ctx, result); err != nil {
		return result, fmt.Errorf("persist evaluation: %w", err)
	}
	return result, nil
}

func (p *Pipeline) finalize(run *Run) *domain.EvaluationResult {
	r := run.Result
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	enrichment := run.Criteria.Enrichment
	if enrichment.Enabled && enrichment.RequireActive && len(r.Projects) > 0 && !anyActive(r.Projects) {
		r.DetailedFeedback.Recommendations = append(r.DetailedFeedback.Recommendations, inactiveRepositoriesNote)
	}

	now := p.deps.Now().UTC()
	r.InternalStatus = r.ShortlistStatus
	r.EvaluatedAt = now
	r.VisibleAt = now.Add(p.opts.VisibilityDelay)
	return r
}

func anyActive(projects []domain.ProjectActivity) bool {
	for _, p := range projects {
		if p.IsActive {
			return true
		}
	}
	return false
}
