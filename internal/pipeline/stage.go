package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
)

// Stage is a single step of an application's evaluation.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Apply mutates run only on success. A returned error leaves the
	// previous stage's output in place.
	Apply(ctx context.Context, deps Deps, run *Run) error
}

// Run is the state threaded through the stages of one evaluation.
type Run struct {
	Job         *domain.JobRequirement
	Application *domain.Application
	Criteria    domain.EvaluationCriteria

	Result    *domain.EvaluationResult
	Signals   []domain.ProjectSignal
	Semantic  domain.SemanticResult
	Technical domain.TechnicalResult
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by stages that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}

// LogStatuses writes one debug entry per stage.
func LogStatuses(logger *zap.Logger, stages []Stage) {
	for _, s := range Describe(stages) {
		fields := []zap.Field{
			zap.String("stage", s.Name),
			zap.Bool("enabled", s.Enabled),
		}
		if s.Reason != "" {
			fields = append(fields, zap.String("reason", s.Reason))
		}
		if len(s.Details) > 0 {
			fields = append(fields, zap.Any("details", s.Details))
		}
		logger.Debug("pipeline stage", fields...)
	}
}

// toggle holds the enabled state shared by every stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
