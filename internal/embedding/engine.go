package embedding

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hire-scorer/internal/domain"
)

const (
	neutralScore    = 50
	unavailableNote = "semantic analysis unavailable"
	// Concurrent embedding requests per analysis.
	maxInFlight = 4
)

// Embedder returns a vector or nil.
type Embedder interface {
	Embed(ctx context.Context, text string) []float64
}

// Engine compares a job against each project semantically.
type Engine struct {
	embedder Embedder
	logger   *zap.Logger
}

func NewEngine(logger *zap.Logger, embedder Embedder) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{embedder: embedder, logger: logger}
}

// Analyze embeds the job once and each project concurrently. Missing
// vectors score 50 with an explanatory note.
func (e *Engine) Analyze(ctx context.Context, job *domain.JobRequirement, signals []domain.ProjectSignal) domain.SemanticResult {
	if len(signals) == 0 {
		return domain.SemanticResult{Score: neutralScore, Note: "no projects to compare"}
	}

	var jobVec []float64
	projectVecs := make([][]float64, len(signals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	g.Go(func() error {
		jobVec = e.embedder.Embed(gctx, JobContext(job))
		return nil
	})
	for i, s := range signals {
		g.Go(func() error {
			projectVecs[i] = e.embedder.Embed(gctx, ProjectContext(s.Project()))
			return nil
		})
	}
	_ = g.Wait()

	result := domain.SemanticResult{Available: jobVec != nil}
	if !result.Available {
		result.Note = unavailableNote
	}

	total := 0.0
	for i, s := range signals {
		sim := domain.ProjectSimilarity{Title: s.Project().Title, Score: neutralScore, Note: unavailableNote}
		if jobVec != nil && projectVecs[i] != nil {
			sim = domain.ProjectSimilarity{Title: sim.Title, Score: round1(Similarity(jobVec, projectVecs[i]))}
		}
		total += sim.Score
		result.Projects = append(result.Projects, sim)
	}
	result.Score = round1(total / float64(len(signals)))

	e.logger.Debug("semantic analysis complete",
		zap.Bool("available", result.Available),
		zap.Float64("score", result.Score),
	)

	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
