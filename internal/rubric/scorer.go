// Package rubric computes deterministic, network-free scores for an
// application against a job.
package rubric

import (
	"math"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

// Score evaluates app against job. It never fails: missing data scores the
// affected dimension conservatively. signals only decorate the result with
// per-project activity; scores come from the declared data.
func Score(job *domain.JobRequirement, app *domain.Application, signals []domain.ProjectSignal, criteria domain.EvaluationCriteria) *domain.EvaluationResult {
	scores := domain.Scores{
		Project:    ProjectScore(job, app.Projects),
		Experience: ExperienceScore(job.Experience, app.ExperienceYears),
		Skills:     SkillsScore(job.RequiredSkills, job.PreferredSkills, app.SkillNames()),
	}
	scores.Overall = criteria.Weights.Overall(scores)

	status, floored := Decide(scores, criteria.MinimumProjectScore)

	result := &domain.EvaluationResult{
		ApplicationID:       app.ID,
		JobID:               job.ID,
		Scores:              scores,
		ShortlistStatus:     status,
		ProjectFloorApplied: floored,
	}
	Describe(job, result)

	if len(signals) == 0 {
		signals = domain.DeclaredSignals(app.Projects, "enrichment not requested")
	}
	for _, s := range signals {
		result.Projects = append(result.Projects, domain.Activity(s, criteria.Enrichment.MinCodeQuality))
	}

	return result
}

// Decide applies the project floor and the overall thresholds.
// floored is true when the project floor caused the rejection.
func Decide(s domain.Scores, minimumProjectScore int) (status domain.ShortlistStatus, floored bool) {
	if s.Project < minimumProjectScore {
		return domain.StatusRejected, true
	}
	return domain.StatusForOverall(s.Overall), false
}

// ProjectScore averages the per-project rubric totals. No projects score 0.
func ProjectScore(job *domain.JobRequirement, projects []domain.DeclaredProject) int {
	if len(projects) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range projects {
		total += ScoreProject(job, p).Total
	}
	return domain.ClampScore(int(math.Round(total / float64(len(projects)))))
}

// ExperienceScore rates total years against the job range and the derived
// seniority against the required level.
func ExperienceScore(want domain.ExperienceRange, years float64) int {
	score := 0
	upper := want.Max
	if upper <= 0 || upper < want.Min {
		upper = math.Inf(1)
	}

	switch {
	case years >= want.Min && years <= upper:
		score += 60
	case years > upper:
		score += 50
	case years >= 0.7*want.Min:
		score += 40
	default:
		score += 20
	}

	have := domain.LevelForYears(years).Rank()
	need := want.Level.Rank()
	switch {
	case have == need:
		score += 40
	case have > need:
		score += 30
	default:
		score += 20
	}

	return domain.ClampScore(score)
}

// SkillsScore awards 100/len(required) per matched required skill and a flat
// bonus per matched preferred skill, capped at 100.
func SkillsScore(required, preferred, declared []string) int {
	if len(required) == 0 {
		return noRequirementsScore
	}
	score := 0.0
	per := 100 / float64(len(required))
	for _, skill := range required {
		if utils.MatchesAny(skill, declared) {
			score += per
		}
	}
	for _, skill := range preferred {
		if utils.MatchesAny(skill, declared) {
			score += preferredBonus
		}
	}
	return domain.ClampScore(int(math.Round(math.Min(score, 100))))
}
