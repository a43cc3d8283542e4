package rubric

import (
	"math"
	"net/url"
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	techWeight       = 0.30
	complexityWeight = 0.25
	relevanceWeight  = 0.20
	qualityWeight    = 0.15
	innovationWeight = 0.10

	noRequirementsScore = 80
	preferredBonus      = 10
)

var innovationKeywords = []string{"ai", "ml", "blockchain", "real time", "scalable", "optimization", "automation"}

// ProjectBreakdown holds the component scores of one project.
type ProjectBreakdown struct {
	Title      string
	Technology float64
	Complexity float64
	Relevance  float64
	Quality    float64
	Innovation float64
	Total      float64
}

// ScoreProject computes the weighted rubric score of a single project.
func ScoreProject(job *domain.JobRequirement, p domain.DeclaredProject) ProjectBreakdown {
	b := ProjectBreakdown{
		Title:      p.Title,
		Technology: TechnologyMatch(job.Projects.RequiredTechnologies, job.PreferredSkills, p.Technologies),
		Complexity: complexityMatch(job.Projects.MinimumComplexity, p.Complexity),
		Relevance:  relevance(job, p),
		Quality:    qualitySignals(p),
		Innovation: innovation(p),
	}
	b.Total = b.Technology*techWeight +
		b.Complexity*complexityWeight +
		b.Relevance*relevanceWeight +
		b.Quality*qualityWeight +
		b.Innovation*innovationWeight
	return b
}

// TechnologyMatch awards 100/len(required) per required technology present
// and a flat bonus per preferred one, capped at 100.
func TechnologyMatch(required, preferred, declared []string) float64 {
	if len(required) == 0 {
		return noRequirementsScore
	}
	score := 0.0
	per := 100 / float64(len(required))
	for _, tech := range required {
		if utils.MatchesAny(tech, declared) {
			score += per
		}
	}
	for _, tech := range preferred {
		if utils.MatchesAny(tech, declared) {
			score += preferredBonus
		}
	}
	return math.Min(score, 100)
}

func complexityMatch(required, declared domain.Complexity) float64 {
	want := required.Level()
	if want == 0 {
		want = domain.ComplexitySimple.Level()
	}
	have := declared.Level()
	switch {
	case have >= want:
		return 100
	case have == want-1:
		return 70
	default:
		return 40
	}
}

func relevance(job *domain.JobRequirement, p domain.DeclaredProject) float64 {
	score := 50.0
	projectText := utils.Compact(p.Title + " " + p.Description)
	for _, kind := range job.Projects.RequiredProjectTypes {
		if k := utils.Compact(kind); k != "" && strings.Contains(projectText, k) {
			score += 30
			break
		}
	}

	jobKW := utils.Keywords(job.Title + " " + job.Description)
	projectKW := utils.Keywords(p.Title + " " + p.Description)
	score += math.Min(float64(utils.Overlap(jobKW, projectKW)*5), 20)

	return math.Min(score, 100)
}

func qualitySignals(p domain.DeclaredProject) float64 {
	score := 0.0
	if validURL(p.RepositoryURL) {
		score += 20
	}
	if validURL(p.LiveURL) {
		score += 20
	}
	if len(p.Description) > 100 {
		score += 20
	}
	if len(p.Challenges) > 0 {
		score += 20
	}
	if len(p.Achievements) > 0 {
		score += 20
	}
	return math.Min(score, 100)
}

func innovation(p domain.DeclaredProject) float64 {
	score := 50.0
	if hasInnovationFeature(p.Features) {
		score += 30
	}
	if len(p.Challenges) > 2 {
		score += 20
	}
	return math.Min(score, 100)
}

func hasInnovationFeature(features []string) bool {
	for _, f := range features {
		text := utils.Normalize(f)
		for _, kw := range innovationKeywords {
			if utils.ContainsPhrase(text, kw) {
				return true
			}
		}
	}
	return false
}

func validURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
