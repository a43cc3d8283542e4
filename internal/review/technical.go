package review

import (
	"math"

	"github.com/spigell/hire-scorer/internal/domain"
)

// declaredTechnical scores projects without repository data by their
// declared complexity.
var declaredTechnical = map[domain.Complexity]int{
	domain.ComplexitySimple:     40,
	domain.ComplexityMedium:     55,
	domain.ComplexityComplex:    70,
	domain.ComplexityEnterprise: 80,
}

const (
	defaultDeclaredTechnical = 40
	testsBonus               = 10
	ciBonus                  = 10
)

// TechnicalScore rates each project's engineering depth and averages them.
func TechnicalScore(signals []domain.ProjectSignal) domain.TechnicalResult {
	var result domain.TechnicalResult
	if len(signals) == 0 {
		return result
	}

	total := 0
	for _, s := range signals {
		score := projectTechnical(s)
		total += score
		result.Projects = append(result.Projects, domain.ProjectTechnical{Title: s.Project().Title, Score: score})
	}
	result.Score = domain.ClampScore(int(math.Round(float64(total) / float64(len(signals)))))
	return result
}

func projectTechnical(signal domain.ProjectSignal) int {
	switch s := signal.(type) {
	case domain.Enriched:
		r := s.Repo
		score := 0.35*float64(r.CodeQuality) + 0.25*float64(r.ArchitectureScore) + 0.2*float64(r.DocumentationScore)
		if r.HasTests {
			score += testsBonus
		}
		if r.HasCICD {
			score += ciBonus
		}
		return domain.ClampScore(int(math.Round(score)))
	case domain.Declared:
		if v, ok := declaredTechnical[s.Complexity]; ok {
			return v
		}
		return defaultDeclaredTechnical
	default:
		return 0
	}
}
