package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hire-scorer/internal/domain"
)

const defaultConcurrency = 4

// Outcome is the result of one application in a batch.
type Outcome struct {
	ApplicationID string                   `json:"applicationId"`
	Result        *domain.EvaluationResult `json:"result,omitempty"`
	Err           error                    `json:"-"`
}

// Batch evaluates applications independently with a fresh pipeline each.
type Batch struct {
	New         func() *Pipeline
	Concurrency int
	Logger      *zap.Logger
}

// Run evaluates every request. Failures are reported per application and
// never stop the others. Outcomes keep the order of reqs.
func (b *Batch) Run(ctx context.Context, reqs []Request) []Outcome {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := b.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	outcomes := make([]Outcome, len(reqs))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, req := range reqs {
		g.Go(func() error {
			if req.Application != nil {
				outcomes[i].ApplicationID = req.Application.ID
			}
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result, outcomes[i].Err = b.New().Evaluate(ctx, req)
			if outcomes[i].Err != nil {
				log.Warn("application evaluation failed",
					zap.String("application_id", outcomes[i].ApplicationID),
					zap.Error(outcomes[i].Err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
